// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is the externally visible state of the sync engine.
type SyncStatus string

const (
	StatusIdle    SyncStatus = "IDLE"
	StatusSyncing SyncStatus = "SYNCING"
	StatusSynced  SyncStatus = "SYNCED"
	StatusWarning SyncStatus = "WARNING"
	StatusError   SyncStatus = "ERROR"
	StatusOffline SyncStatus = "OFFLINE"
)

// SyncReason is a machine-readable code explaining why a sync attempt did not
// fully succeed. Precondition reasons are expected steady-state outcomes and
// are returned as data, not as errors.
type SyncReason string

const (
	ReasonNone                 SyncReason = ""
	ReasonSyncDisabled         SyncReason = "sync_disabled"
	ReasonOffline              SyncReason = "offline"
	ReasonNotAuthenticated     SyncReason = "not_authenticated"
	ReasonNetwork              SyncReason = "network"
	ReasonServer               SyncReason = "server"
	ReasonValidation           SyncReason = "validation"
	ReasonPartialUploadFailure SyncReason = "partial_upload_failure"
	ReasonTimeout              SyncReason = "timeout"
	ReasonAlreadySyncing       SyncReason = "already_syncing"
	ReasonCancelled            SyncReason = "cancelled"
	ReasonLocalStore           SyncReason = "local_store"
)

// StatusChangedEvent is the name of the event published on every status
// transition.
const StatusChangedEvent = "sync:status-changed"

// StatusEvent is the payload delivered to status subscribers.
type StatusEvent struct {
	Status SyncStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`

	// Cause is set for ERROR and WARNING and carries the underlying error of
	// the failed phase, if any.
	Cause error `json:"-"`

	At time.Time `json:"at"`
}

// SyncOptions controls a single RequestSync call.
type SyncOptions struct {
	// Force syncs even in local-only mode and downloads the full remote
	// collection instead of the incremental window.
	Force bool
}

// RecordError describes the upload failure of a single record.
type RecordError struct {
	RecordID string `json:"recordId"`
	Message  string `json:"message"`
}

// SyncResult is the transient outcome of a sync or retry attempt. It is never
// persisted.
type SyncResult struct {
	Success bool       `json:"success"`
	Reason  SyncReason `json:"reason,omitempty"`

	Status SyncStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`

	// Downloaded counts remote records written to the local store.
	Downloaded int `json:"downloaded"`
	// Uploaded counts records accepted by the bulk upsert.
	Uploaded int `json:"uploaded"`
	// Created and Updated mirror the bulk-upsert response counters.
	Created int `json:"created"`
	Updated int `json:"updated"`
	// Retried counts queue entries sent by RetryFailed.
	Retried int `json:"retried"`

	Errors []RecordError `json:"errors,omitempty"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
