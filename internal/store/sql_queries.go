// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	createUser = `INSERT INTO users (login, name, password_hash)
	VALUES ($1, $2, $3)
	RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at
	FROM users
	WHERE login = $1;`

	findUserByID = `SELECT user_id, login, name, password_hash, created_at
	FROM users
	WHERE user_id = $1;`

	findContractOwner = `SELECT user_id FROM contracts WHERE id = $1;`

	savepointContract        = `SAVEPOINT contract_upsert;`
	releaseSavepointContract = `RELEASE SAVEPOINT contract_upsert;`
	rollbackToSavepoint      = `ROLLBACK TO SAVEPOINT contract_upsert;`
)

var serverContractColumns = []string{
	"id",
	"contract_number",
	"title",
	"customer",
	"location",
	"status",
	"start_date",
	"end_date",
	"amount_cents",
	"notes",
	"created_at",
	"updated_at",
}

// upsertContractSuffix keeps the newer record and refuses to touch rows of
// other users. "xmax = 0" is true only for freshly inserted rows.
const upsertContractSuffix = `ON CONFLICT (id) DO UPDATE SET
		contract_number = EXCLUDED.contract_number,
		title           = EXCLUDED.title,
		customer        = EXCLUDED.customer,
		location        = EXCLUDED.location,
		status          = EXCLUDED.status,
		start_date      = EXCLUDED.start_date,
		end_date        = EXCLUDED.end_date,
		amount_cents    = EXCLUDED.amount_cents,
		notes           = EXCLUDED.notes,
		updated_at      = EXCLUDED.updated_at
	WHERE contracts.user_id = EXCLUDED.user_id
	  AND contracts.updated_at <= EXCLUDED.updated_at
	RETURNING (xmax = 0) AS inserted`

func buildListContractsQuery(userID int64, updatedAfter *time.Time) (string, []any, error) {
	builder := psql.
		Select(serverContractColumns...).
		From("contracts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at", "id")

	if updatedAfter != nil {
		builder = builder.Where(sq.Gt{"updated_at": updatedAfter.UTC()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetContractQuery(userID int64, id string) (string, []any, error) {
	query, args, err := psql.
		Select(serverContractColumns...).
		From("contracts").
		Where(sq.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertContractQuery(userID int64, c models.Contract) (string, []any, error) {
	query, args, err := psql.
		Insert("contracts").
		Columns(append([]string{"user_id"}, serverContractColumns...)...).
		Values(append([]any{userID}, serverContractValues(c)...)...).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateContractQuery(userID int64, c models.Contract) (string, []any, error) {
	query, args, err := psql.
		Update("contracts").
		SetMap(map[string]any{
			"contract_number": c.ContractNumber,
			"title":           c.Title,
			"customer":        c.Customer,
			"location":        c.Location,
			"status":          c.Status,
			"start_date":      c.StartDate,
			"end_date":        c.EndDate,
			"amount_cents":    c.AmountCents,
			"notes":           c.Notes,
			"updated_at":      c.UpdatedAt.UTC(),
		}).
		Where(sq.Eq{"id": c.ID, "user_id": userID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertContractQuery(userID int64, c models.Contract) (string, []any, error) {
	query, args, err := psql.
		Insert("contracts").
		Columns(append([]string{"user_id"}, serverContractColumns...)...).
		Values(append([]any{userID}, serverContractValues(c)...)...).
		Suffix(upsertContractSuffix).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func serverContractValues(c models.Contract) []any {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = c.UpdatedAt
	}

	return []any{
		c.ID,
		c.ContractNumber,
		c.Title,
		c.Customer,
		c.Location,
		c.Status,
		c.StartDate,
		c.EndDate,
		c.AmountCents,
		c.Notes,
		createdAt.UTC(),
		c.UpdatedAt.UTC(),
	}
}

func joinColumns() string {
	return strings.Join(serverContractColumns, ", ")
}
