// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
	"github.com/jackc/pgerrcode"
)

// contractRepository is the PostgreSQL-backed implementation of
// [ContractRepository].
type contractRepository struct {
	*DB
	logger *logger.Logger
}

// NewContractRepository constructs a [ContractRepository] backed by db.
func NewContractRepository(db *DB, logger *logger.Logger) ContractRepository {
	logger.Debug().Msg("creating contract repository")
	return &contractRepository{DB: db, logger: logger}
}

// ListContracts returns the user's contracts, restricted to those updated
// strictly after updatedAfter when it is not nil.
func (r *contractRepository) ListContracts(ctx context.Context, userID int64, updatedAfter *time.Time) ([]models.Contract, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListContractsQuery(userID, updatedAfter)
	if err != nil {
		return nil, err
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "contractRepository.ListContracts").
			Int64("user_id", userID).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	contracts := make([]models.Contract, 0, 50)
	for rows.Next() {
		contract, scanErr := scanServerContract(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "contractRepository.ListContracts").
				Int64("user_id", userID).
				Msg("failed to scan contract row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		contracts = append(contracts, contract)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return contracts, nil
}

// GetContract returns [ErrContractNotFound] when the id is unknown or owned by
// someone else.
func (r *contractRepository) GetContract(ctx context.Context, userID int64, id string) (models.Contract, error) {
	query, args, err := buildGetContractQuery(userID, id)
	if err != nil {
		return models.Contract{}, err
	}

	contract, err := scanServerContract(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contract{}, ErrContractNotFound
	}
	if err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return contract, nil
}

// CreateContract inserts a new contract. An existing id yields
// [ErrContractAlreadyExists].
func (r *contractRepository) CreateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error) {
	query, args, err := buildInsertContractQuery(userID, contract)
	if err != nil {
		return models.Contract{}, err
	}

	created, err := scanServerContract(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Contract{}, ErrContractAlreadyExists
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "contractRepository.CreateContract").
			Str("contract_id", contract.ID).
			Msg("failed to insert contract")
		return models.Contract{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// UpdateContract replaces the user's contract. Returns [ErrContractNotFound]
// when no row of this user matches.
func (r *contractRepository) UpdateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error) {
	query, args, err := buildUpdateContractQuery(userID, contract)
	if err != nil {
		return models.Contract{}, err
	}

	updated, err := scanServerContract(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contract{}, ErrContractNotFound
	}
	if err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// BulkUpsert runs every record inside its own savepoint of one transaction,
// so a rejected record is rolled back alone and reported in the response.
//
// A record whose stored copy is newer is left untouched and is not reported
// as an error: the client picks up the newer copy on its next download.
func (r *contractRepository) BulkUpsert(ctx context.Context, userID int64, contracts []models.Contract) (models.BulkUpsertResponse, error) {
	log := logger.FromContext(ctx)
	resp := models.BulkUpsertResponse{Errors: make([]models.BulkUpsertError, 0)}

	if len(contracts) == 0 {
		return resp, nil
	}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return models.BulkUpsertResponse{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, contract := range contracts {
		inserted, applied, recErr := r.upsertOne(ctx, tx, userID, contract)
		if recErr != nil {
			if r.errorClassificator != nil && r.errorClassificator.Classify(recErr) == Retryable {
				log.Err(recErr).
					Str("func", "contractRepository.BulkUpsert").
					Int("iteration", i).
					Msg("transient database error, aborting batch")
				return models.BulkUpsertResponse{}, fmt.Errorf("%w: %w", ErrExecutingStatement, recErr)
			}

			message := recordErrorMessage(recErr)
			if errors.Is(recErr, ErrContractOwnedByAnotherUser) {
				message = ErrContractOwnedByAnotherUser.Error()
			}
			log.Warn().
				Err(recErr).
				Str("func", "contractRepository.BulkUpsert").
				Str("contract_id", contract.ID).
				Msg("contract rejected")
			resp.Errors = append(resp.Errors, models.BulkUpsertError{ID: contract.ID, Error: message})
			continue
		}

		switch {
		case !applied:
			log.Debug().Str("contract_id", contract.ID).Msg("stored copy is newer, upsert skipped")
		case inserted:
			resp.Created++
		default:
			resp.Updated++
		}
	}

	if err = tx.Commit(); err != nil {
		return models.BulkUpsertResponse{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return resp, nil
}

// upsertOne applies a single record between SAVEPOINT and RELEASE. applied is
// false when the stored copy was newer.
func (r *contractRepository) upsertOne(ctx context.Context, tx *sql.Tx, userID int64, contract models.Contract) (inserted, applied bool, err error) {
	if _, err = tx.ExecContext(ctx, savepointContract); err != nil {
		return false, false, err
	}

	rollback := func(cause error) (bool, bool, error) {
		if _, rbErr := tx.ExecContext(ctx, rollbackToSavepoint); rbErr != nil {
			return false, false, errors.Join(cause, rbErr)
		}
		return false, false, cause
	}

	query, args, err := buildUpsertContractQuery(userID, contract)
	if err != nil {
		return rollback(err)
	}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&inserted)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		var owner int64
		if ownerErr := tx.QueryRowContext(ctx, findContractOwner, contract.ID).Scan(&owner); ownerErr != nil {
			return rollback(ownerErr)
		}
		if owner != userID {
			return rollback(ErrContractOwnedByAnotherUser)
		}
		applied = false
	case err != nil:
		return rollback(err)
	default:
		applied = true
	}

	if _, err = tx.ExecContext(ctx, releaseSavepointContract); err != nil {
		return false, false, err
	}

	return inserted, applied, nil
}

func scanServerContract(row rowScanner) (models.Contract, error) {
	var c models.Contract
	err := row.Scan(
		&c.ID,
		&c.ContractNumber,
		&c.Title,
		&c.Customer,
		&c.Location,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.AmountCents,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return models.Contract{}, err
	}

	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
