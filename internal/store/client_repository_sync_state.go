// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// syncStateRepository is the SQLite implementation of [SyncStateRepository].
// Settings and session are JSON blobs in app_state; retry entries live in
// sync_retry_queue.
type syncStateRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSyncStateRepository constructs a [SyncStateRepository] on db.
func NewSyncStateRepository(db *DB, log *logger.Logger) SyncStateRepository {
	return &syncStateRepository{db: db, logger: log}
}

// LoadSyncConfig implements [SyncStateRepository].
func (r *syncStateRepository) LoadSyncConfig(ctx context.Context) (models.SyncConfig, bool, error) {
	var cfg models.SyncConfig
	found, err := r.loadBlob(ctx, appStateKeySyncConfig, &cfg)
	if err != nil || !found {
		return models.SyncConfig{}, false, err
	}

	return cfg, true, nil
}

// SaveSyncConfig implements [SyncStateRepository].
func (r *syncStateRepository) SaveSyncConfig(ctx context.Context, cfg models.SyncConfig) error {
	return r.saveBlob(ctx, appStateKeySyncConfig, cfg)
}

// LoadSession implements [SyncStateRepository].
func (r *syncStateRepository) LoadSession(ctx context.Context) (models.Session, error) {
	var session models.Session
	found, err := r.loadBlob(ctx, appStateKeySession, &session)
	if err != nil {
		return models.Session{}, err
	}
	if !found || session.Token == "" {
		return models.Session{}, ErrLocalSessionNotFound
	}

	return session, nil
}

// SaveSession implements [SyncStateRepository].
func (r *syncStateRepository) SaveSession(ctx context.Context, session models.Session) error {
	return r.saveBlob(ctx, appStateKeySession, session)
}

// ClearSession implements [SyncStateRepository].
func (r *syncStateRepository) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAppState, appStateKeySession); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// LoadRetryQueue implements [SyncStateRepository].
func (r *syncStateRepository) LoadRetryQueue(ctx context.Context) ([]models.RetryEntry, error) {
	rows, err := r.db.QueryContext(ctx, listRetryEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.RetryEntry, 0)
	for rows.Next() {
		var (
			entry            models.RetryEntry
			id, payload, at string
		)
		if err = rows.Scan(&id, &payload, &entry.LastError, &entry.Attempts, &at); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if err = json.Unmarshal([]byte(payload), &entry.Contract); err != nil {
			r.logger.Err(err).
				Str("func", "syncStateRepository.LoadRetryQueue").
				Str("contract_id", id).
				Msg("corrupted retry entry payload")
			return nil, fmt.Errorf("%w: %w", ErrEncodingState, err)
		}
		if entry.FailedAt, err = parseSQLiteTime(at); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// SaveRetryEntries implements [SyncStateRepository]. Entries are keyed by
// contract id; an existing entry is replaced.
func (r *syncStateRepository) SaveRetryEntries(ctx context.Context, entries ...models.RetryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, entry := range entries {
			payload, err := json.Marshal(entry.Contract)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrEncodingState, err)
			}

			_, err = tx.ExecContext(ctx, putRetryEntry,
				entry.Contract.ID,
				string(payload),
				entry.LastError,
				entry.Attempts,
				formatSQLiteTime(entry.FailedAt),
			)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

// DeleteRetryEntries implements [SyncStateRepository].
func (r *syncStateRepository) DeleteRetryEntries(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, deleteRetryEntry, id); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

// ClearRetryQueue implements [SyncStateRepository].
func (r *syncStateRepository) ClearRetryQueue(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clearRetryEntries); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *syncStateRepository) loadBlob(ctx context.Context, key string, dst any) (bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getAppState, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(value), dst); err != nil {
		r.logger.Err(err).
			Str("func", "syncStateRepository.loadBlob").
			Str("key", key).
			Msg("corrupted app state blob")
		return false, fmt.Errorf("%w: %w", ErrEncodingState, err)
	}

	return true, nil
}

func (r *syncStateRepository) saveBlob(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingState, err)
	}

	if _, err = r.db.ExecContext(ctx, putAppState, key, string(payload), formatSQLiteTime(time.Now())); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *syncStateRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
