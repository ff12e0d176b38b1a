// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
)

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps a database connection together with the migration set and error
// classifier of its dialect.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	migrate            func(*sql.DB) error
	logger             *logger.Logger
}

// Migrate applies the pending migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return db.migrate(db.DB)
}
