// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// StorageMode selects where contracts live.
type StorageMode string

const (
	// LocalOnly keeps contracts exclusively in the local store. The sync
	// engine never contacts the network unless forced.
	LocalOnly StorageMode = "LOCAL_ONLY"

	// SyncWithServer mirrors contracts to the remote store.
	SyncWithServer StorageMode = "SYNC_WITH_SERVER"
)

// Valid reports whether m is a known storage mode.
func (m StorageMode) Valid() bool {
	return m == LocalOnly || m == SyncWithServer
}

// SyncConfig is the persisted user choice of storage mode and sync
// preferences. It is stored as a single JSON blob under a stable key.
type SyncConfig struct {
	StorageMode StorageMode `json:"storageMode"`

	// SyncOnLoad triggers a sync when the application starts.
	SyncOnLoad bool `json:"syncOnLoad"`

	// SyncOnSave triggers a sync after every local create or update.
	SyncOnSave bool `json:"syncOnSave"`

	// APIBaseURL overrides the configured server address when not empty.
	APIBaseURL string `json:"apiBaseUrl,omitempty"`

	// LastSyncTimestamp is the start time of the last fully successful sync.
	// It bounds incremental downloads and uploads. Encoded as RFC 3339.
	LastSyncTimestamp *time.Time `json:"lastSyncTimestamp,omitempty"`
}

// DefaultSyncConfig returns the configuration created on first run.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		StorageMode: LocalOnly,
		SyncOnLoad:  true,
		SyncOnSave:  true,
	}
}
