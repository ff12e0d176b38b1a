// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification indicates whether a failed database operation should be
// retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable is the default for constraint violations, syntax errors,
	// data exceptions and unrecognised errors.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures such as lost connections or
	// deadlock rollbacks.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a PostgreSQL error code to an [ErrorClassification].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		// Class 40: transaction rollback
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		// Class 57: operator intervention
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}

// recordErrorMessage turns a failed per-record statement into the message
// reported back to the client in the bulk-upsert response.
func recordErrorMessage(err error) string {
	switch code := postgresError(err); {
	case code == pgerrcode.NotNullViolation:
		return "missing required field"
	case code == pgerrcode.CheckViolation:
		return "field value violates a constraint"
	case code == pgerrcode.UniqueViolation:
		return "duplicate contract"
	case pgerrcode.IsDataException(code):
		return "invalid field value"
	case code != "":
		return "database rejected record (" + code + ")"
	default:
		return "database error"
	}
}
