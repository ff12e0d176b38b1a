// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport to the contract API.
//
// [RemoteClient] is a typed REST wrapper with one method per endpoint. It
// performs no retries and no merge logic. Failures are returned as errors
// wrapping one of the sentinels in errors.go, and [KindOf] classifies them
// into the network / unauthorized / server / validation taxonomy.
package adapter

import (
	"context"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// RemoteClient defines communication with the contract server.
// Implementations must be safe for concurrent use.
type RemoteClient interface {
	// SetToken stores the bearer token attached to all authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// SetBaseURL switches the API root for subsequent requests. Returns an
	// error if raw is not a valid http(s) URL.
	SetBaseURL(raw string) error

	// BaseURL returns the current API root.
	BaseURL() string

	// Register creates an account (POST /auth/register) and stores the
	// returned bearer token.
	Register(ctx context.Context, creds models.Credentials) (models.User, error)

	// Login authenticates (POST /auth/login) and stores the returned bearer
	// token.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// Me returns the user the current token belongs to (GET /auth/me).
	Me(ctx context.Context) (models.User, error)

	// ListContracts returns remote contracts updated strictly after
	// updatedAfter, or all of them when updatedAfter is nil
	// (GET /contracts?updatedAfter=).
	ListContracts(ctx context.Context, updatedAfter *time.Time) ([]models.Contract, error)

	// GetContract returns a single contract (GET /contracts/{id}).
	GetContract(ctx context.Context, id string) (models.Contract, error)

	// CreateContract stores a new contract (POST /contracts).
	CreateContract(ctx context.Context, contract models.Contract) (models.Contract, error)

	// UpdateContract replaces a contract (PUT /contracts/{id}).
	UpdateContract(ctx context.Context, contract models.Contract) (models.Contract, error)

	// BulkUpsert sends all contracts in one request
	// (POST /contracts/bulk-upsert). Per-record rejections are reported in
	// the response, not as an error.
	BulkUpsert(ctx context.Context, contracts []models.Contract) (models.BulkUpsertResponse, error)
}
