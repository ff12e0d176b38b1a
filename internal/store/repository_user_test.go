// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	return &userRepository{db: &DB{DB: db, logger: l}, logger: l}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userColumns = []string{"user_id", "login", "name", "password_hash", "created_at"}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("john", "John", "hash").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "john", "John", "hash", now))

	created, err := repo.CreateUser(context.Background(), models.User{Login: "john", Name: "John", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "hash", created.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_LoginTaken(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestCreateUser_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(sql.ErrConnDone)

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestFindUserByLogin(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE login").
		WithArgs("john").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(7, "john", "John", "hash", time.Now()))

	user, err := repo.FindUserByLogin(context.Background(), "john")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}
