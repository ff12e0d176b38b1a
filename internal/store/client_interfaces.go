// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalContractRepository is the authoritative local collection of contracts.
//
// Create and Update stamp UpdatedAt so that it strictly increases with every
// local mutation. Put stores a record verbatim and is used when applying
// remote state.
type LocalContractRepository interface {
	Create(ctx context.Context, contract models.Contract) (models.Contract, error)
	Update(ctx context.Context, contract models.Contract) (models.Contract, error)
	Get(ctx context.Context, id string) (models.Contract, error)
	List(ctx context.Context) ([]models.Contract, error)
	ListUpdatedAfter(ctx context.Context, after time.Time) ([]models.Contract, error)
	Put(ctx context.Context, contract models.Contract) error
	Delete(ctx context.Context, id string) error
}

// SyncStateRepository persists the client sync settings, the session and the
// retry queue.
type SyncStateRepository interface {
	// LoadSyncConfig returns the stored settings and whether any were found.
	LoadSyncConfig(ctx context.Context) (models.SyncConfig, bool, error)
	SaveSyncConfig(ctx context.Context, cfg models.SyncConfig) error

	// LoadSession returns [ErrLocalSessionNotFound] when no one is logged in.
	LoadSession(ctx context.Context) (models.Session, error)
	SaveSession(ctx context.Context, session models.Session) error
	ClearSession(ctx context.Context) error

	LoadRetryQueue(ctx context.Context) ([]models.RetryEntry, error)
	SaveRetryEntries(ctx context.Context, entries ...models.RetryEntry) error
	DeleteRetryEntries(ctx context.Context, ids ...string) error
	ClearRetryQueue(ctx context.Context) error
}
