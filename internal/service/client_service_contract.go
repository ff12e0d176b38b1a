// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

type clientContractService struct {
	contracts store.LocalContractRepository
	settings  SyncSettings
	engine    SyncEngine
	logger    *logger.Logger
}

// NewClientContractService returns the local CRUD service. Saves trigger a
// sync through engine when sync-on-save is enabled in sync-with-server mode.
func NewClientContractService(contracts store.LocalContractRepository, settings SyncSettings, engine SyncEngine, logger *logger.Logger) ClientContractService {
	return &clientContractService{
		contracts: contracts,
		settings:  settings,
		engine:    engine,
		logger:    logger,
	}
}

func (s *clientContractService) Create(ctx context.Context, contract models.Contract) (models.Contract, error) {
	if contract.Status == "" {
		contract.Status = models.ContractDraft
	}

	created, err := s.contracts.Create(ctx, contract)
	if err != nil {
		return models.Contract{}, fmt.Errorf("create contract locally: %w", err)
	}

	s.syncOnSave(ctx, created.ID)
	return created, nil
}

func (s *clientContractService) Update(ctx context.Context, contract models.Contract) (models.Contract, error) {
	updated, err := s.contracts.Update(ctx, contract)
	if err != nil {
		return models.Contract{}, fmt.Errorf("update contract locally: %w", err)
	}

	s.syncOnSave(ctx, updated.ID)
	return updated, nil
}

func (s *clientContractService) Get(ctx context.Context, id string) (models.Contract, error) {
	return s.contracts.Get(ctx, id)
}

func (s *clientContractService) List(ctx context.Context) ([]models.Contract, error) {
	return s.contracts.List(ctx)
}

func (s *clientContractService) Delete(ctx context.Context, id string) error {
	return s.contracts.Delete(ctx, id)
}

// syncOnSave requests a sync after a successful save. The outcome is only
// logged: the status broadcaster already reports it to the user.
func (s *clientContractService) syncOnSave(ctx context.Context, contractID string) {
	cfg := s.settings.Get()
	if !cfg.SyncOnSave || cfg.StorageMode != models.SyncWithServer {
		return
	}

	result := s.engine.RequestSync(ctx, models.SyncOptions{})
	if !result.Success {
		s.logger.Warn().
			Str("contract_id", contractID).
			Str("status", string(result.Status)).
			Str("reason", string(result.Reason)).
			Str("detail", result.Detail).
			Msg("sync after save did not succeed")
	}
}
