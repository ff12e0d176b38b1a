// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	UserRepository     UserRepository
	ContractRepository ContractRepository

	db *DB
}

// NewStorages connects to PostgreSQL at dsn, applies the server migrations
// and wires the repositories.
func NewStorages(ctx context.Context, dsn string, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, logger),
		ContractRepository: NewContractRepository(db, logger),
		db:                 db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
