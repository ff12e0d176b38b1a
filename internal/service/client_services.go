// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/adapter"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	Settings        SyncSettings
	Engine          SyncEngine
	ContractService ClientContractService
	AuthService     ClientAuthService
	SyncJob         ClientSyncJob
}

// NewClientServices loads the sync settings and the retry queue and wires
// the engine and the services built on it.
func NewClientServices(ctx context.Context, storages *store.ClientStorages, remote adapter.RemoteClient, cfg config.ClientAdapter, logger *logger.Logger) (*ClientServices, error) {
	settings, err := NewSyncSettings(ctx, storages.SyncState, remote, logger)
	if err != nil {
		return nil, fmt.Errorf("init sync settings: %w", err)
	}

	queue := NewRetryQueue(storages.SyncState, logger)
	if err = queue.Load(ctx); err != nil {
		return nil, fmt.Errorf("init retry queue: %w", err)
	}

	probe := NewHostProbe(remote.BaseURL)
	engine := NewSyncEngine(remote, storages.Contracts, settings, queue, probe, cfg.RequestTimeout, logger)

	return &ClientServices{
		Settings:        settings,
		Engine:          engine,
		ContractService: NewClientContractService(storages.Contracts, settings, engine, logger),
		AuthService:     NewClientAuthService(remote, storages.SyncState, logger),
		SyncJob:         NewClientSyncJob(engine, logger),
	}, nil
}
