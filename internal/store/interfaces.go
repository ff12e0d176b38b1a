// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// UserRepository stores server accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// ContractRepository stores the authoritative contract collection of every
// user. All methods are scoped to userID.
type ContractRepository interface {
	ListContracts(ctx context.Context, userID int64, updatedAfter *time.Time) ([]models.Contract, error)
	GetContract(ctx context.Context, userID int64, id string) (models.Contract, error)
	CreateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error)
	UpdateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error)

	// BulkUpsert applies every contract in one transaction under
	// last-writer-wins on UpdatedAt. A record rejected by the database is
	// reported in the response and does not abort the others.
	BulkUpsert(ctx context.Context, userID int64, contracts []models.Contract) (models.BulkUpsertResponse, error)
}
