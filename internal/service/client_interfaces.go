// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// ConnectivityProbe reports whether the host has network connectivity. The
// engine consults it once per sync before any HTTP call.
type ConnectivityProbe interface {
	Online(ctx context.Context) bool
}

// SyncEngine keeps the local contract collection and the remote store in
// step. It owns the sync status and the retry queue.
type SyncEngine interface {
	// RequestSync runs a download phase followed by a single bulk upload.
	// Precondition failures are reported in the result, never as panics or
	// errors. A call made during a sync shares its result; a forced call
	// during a normal sync, or any call during a retry, is rejected with
	// reason already_syncing.
	RequestSync(ctx context.Context, opts models.SyncOptions) models.SyncResult

	// RetryFailed re-uploads the queued records in one bulk call. It is
	// rejected with reason already_syncing while another run is in flight.
	RetryFailed(ctx context.Context) models.SyncResult

	// ClearRetryQueue drops every queued record on explicit user request.
	ClearRetryQueue(ctx context.Context) error

	// FailedRecords lists the retry queue.
	FailedRecords() []models.RetryEntry

	// Status returns the current status snapshot.
	Status() models.StatusEvent

	// LastResult returns the result of the last completed run, if any.
	LastResult() (models.SyncResult, bool)

	// Subscribe registers fn for every status transition. The returned
	// function removes the subscription.
	Subscribe(fn func(models.StatusEvent)) (unsubscribe func())
}

// SyncSettings is the persisted [models.SyncConfig]. Every setter saves the
// whole configuration before it becomes visible to Get.
type SyncSettings interface {
	Get() models.SyncConfig
	SetStorageMode(ctx context.Context, mode models.StorageMode) error
	SetSyncOnLoad(ctx context.Context, enabled bool) error
	SetSyncOnSave(ctx context.Context, enabled bool) error
	SetAPIBaseURL(ctx context.Context, raw string) error
	SetLastSync(ctx context.Context, at time.Time) error
}

// ClientContractService is the CRUD surface of the local contract
// collection used by the UI.
type ClientContractService interface {
	// Create stores a new contract locally and, when sync-on-save applies,
	// triggers a sync. A failed sync never fails the save.
	Create(ctx context.Context, contract models.Contract) (models.Contract, error)

	// Update behaves like Create for an existing contract.
	Update(ctx context.Context, contract models.Contract) (models.Contract, error)

	Get(ctx context.Context, id string) (models.Contract, error)
	List(ctx context.Context) ([]models.Contract, error)

	// Delete removes the contract from the local store only.
	Delete(ctx context.Context, id string) error
}

// ClientAuthService manages the client session with the contract server.
type ClientAuthService interface {
	Register(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	Logout(ctx context.Context) error

	// RestoreSession loads the persisted session and applies its token to the
	// remote client. ok is false when no one is logged in.
	RestoreSession(ctx context.Context) (user models.User, ok bool, err error)
}

// ClientSyncJob defines the contract for a background worker that
// periodically requests a sync.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
