// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
)

// ClientStorages groups all client-side repositories into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// Contracts is the SQLite-backed local contract collection.
	Contracts LocalContractRepository

	// SyncState persists sync settings, the session and the retry queue.
	SyncState SyncStateRepository

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DSN, applies the client
// migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Contracts: NewLocalContractRepository(db, logger),
		SyncState: NewSyncStateRepository(db, logger),
		db:        db,
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
