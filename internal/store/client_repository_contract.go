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
	"github.com/agtMorpheus/cautious-potato-sub004/internal/utils"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
	"github.com/mattn/go-sqlite3"
)

// localContractRepository is the SQLite implementation of
// [LocalContractRepository].
type localContractRepository struct {
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewLocalContractRepository constructs a [LocalContractRepository] on db.
func NewLocalContractRepository(db *DB, log *logger.Logger) LocalContractRepository {
	return &localContractRepository{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: log,
	}
}

// Create assigns a UUIDv7 when contract.ID is empty and stamps CreatedAt and
// UpdatedAt with the current time.
func (r *localContractRepository) Create(ctx context.Context, contract models.Contract) (models.Contract, error) {
	if contract.ID == "" {
		contract.ID = r.ids.Generate()
	}

	now := r.timestamp()
	contract.CreatedAt = now
	contract.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, insertContract, contractArgs(contract)...)
	if err != nil {
		if isSQLiteConstraint(err) {
			return models.Contract{}, ErrContractAlreadyExists
		}
		r.logger.Err(err).
			Str("func", "localContractRepository.Create").
			Str("contract_id", contract.ID).
			Msg("failed to insert contract")
		return models.Contract{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return contract, nil
}

// Update overwrites the business fields of an existing contract. UpdatedAt is
// set to the current time, or to one microsecond after the stored value when
// the clock has not advanced past it.
func (r *localContractRepository) Update(ctx context.Context, contract models.Contract) (models.Contract, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	var rawPrev string
	if err = tx.QueryRowContext(ctx, getContractUpdatedAt, contract.ID).Scan(&rawPrev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contract{}, ErrContractNotFound
		}
		return models.Contract{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	prev, err := parseSQLiteTime(rawPrev)
	if err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	updatedAt := r.timestamp()
	if !updatedAt.After(prev) {
		updatedAt = prev.Add(time.Microsecond)
	}
	contract.UpdatedAt = updatedAt

	_, err = tx.ExecContext(ctx, updateContract,
		contract.ContractNumber,
		contract.Title,
		contract.Customer,
		contract.Location,
		contract.Status,
		formatNullableTime(contract.StartDate),
		formatNullableTime(contract.EndDate),
		contract.AmountCents,
		contract.Notes,
		formatSQLiteTime(contract.UpdatedAt),
		contract.ID,
	)
	if err != nil {
		r.logger.Err(err).
			Str("func", "localContractRepository.Update").
			Str("contract_id", contract.ID).
			Msg("failed to update contract")
		return models.Contract{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return r.Get(ctx, contract.ID)
}

// Get returns [ErrContractNotFound] for unknown ids.
func (r *localContractRepository) Get(ctx context.Context, id string) (models.Contract, error) {
	contract, err := scanContract(r.db.QueryRowContext(ctx, getContract, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contract{}, ErrContractNotFound
	}
	if err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return contract, nil
}

// List returns every local contract ordered by UpdatedAt.
func (r *localContractRepository) List(ctx context.Context) ([]models.Contract, error) {
	return r.query(ctx, "localContractRepository.List", listContracts)
}

// ListUpdatedAfter returns contracts with UpdatedAt strictly after after.
func (r *localContractRepository) ListUpdatedAfter(ctx context.Context, after time.Time) ([]models.Contract, error) {
	return r.query(ctx, "localContractRepository.ListUpdatedAfter", listContractsUpdatedAfter, formatSQLiteTime(after))
}

// Put inserts or replaces contract exactly as given, timestamps included.
func (r *localContractRepository) Put(ctx context.Context, contract models.Contract) error {
	if contract.ID == "" {
		return fmt.Errorf("%w: empty contract id", ErrExecutingStatement)
	}

	if _, err := r.db.ExecContext(ctx, putContract, contractArgs(contract)...); err != nil {
		r.logger.Err(err).
			Str("func", "localContractRepository.Put").
			Str("contract_id", contract.ID).
			Msg("failed to put contract")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete removes the contract locally. Returns [ErrContractNotFound] for
// unknown ids.
func (r *localContractRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteContract, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *localContractRepository) query(ctx context.Context, funcName, query string, args ...any) ([]models.Contract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	contracts := make([]models.Contract, 0, 16)
	for rows.Next() {
		contract, scanErr := scanContract(rows)
		if scanErr != nil {
			r.logger.Err(scanErr).Str("func", funcName).Msg("failed to scan contract row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		contracts = append(contracts, contract)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return contracts, nil
}

func (r *localContractRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (models.Contract, error) {
	var (
		c                    models.Contract
		startDate, endDate   sql.NullString
		createdAt, updatedAt string
	)

	err := row.Scan(
		&c.ID,
		&c.ContractNumber,
		&c.Title,
		&c.Customer,
		&c.Location,
		&c.Status,
		&startDate,
		&endDate,
		&c.AmountCents,
		&c.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.Contract{}, err
	}

	if c.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return models.Contract{}, err
	}
	if c.UpdatedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return models.Contract{}, err
	}
	if c.StartDate, err = parseNullableTime(startDate); err != nil {
		return models.Contract{}, err
	}
	if c.EndDate, err = parseNullableTime(endDate); err != nil {
		return models.Contract{}, err
	}

	return c, nil
}

func contractArgs(c models.Contract) []any {
	return []any{
		c.ID,
		c.ContractNumber,
		c.Title,
		c.Customer,
		c.Location,
		c.Status,
		formatNullableTime(c.StartDate),
		formatNullableTime(c.EndDate),
		c.AmountCents,
		c.Notes,
		formatSQLiteTime(c.CreatedAt),
		formatSQLiteTime(c.UpdatedAt),
	}
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatSQLiteTime(*t)
}

func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseSQLiteTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isSQLiteConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
