// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// AuthService registers and authenticates users of the contract server and
// issues the bearer tokens used by the client.
type AuthService interface {
	RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ContractService is the server-side contract collection of one user.
type ContractService interface {
	ListContracts(ctx context.Context, userID int64, updatedAfter *time.Time) ([]models.Contract, error)
	GetContract(ctx context.Context, userID int64, id string) (models.Contract, error)
	CreateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error)
	UpdateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error)
	BulkUpsert(ctx context.Context, userID int64, contracts []models.Contract) (models.BulkUpsertResponse, error)
}
