// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

type contractService struct {
	contractRepository store.ContractRepository

	logger *logger.Logger
}

func NewContractService(contractRepository store.ContractRepository, logger *logger.Logger) ContractService {
	return &contractService{
		contractRepository: contractRepository,
		logger:             logger,
	}
}

func (c *contractService) ListContracts(ctx context.Context, userID int64, updatedAfter *time.Time) ([]models.Contract, error) {
	return c.contractRepository.ListContracts(ctx, userID, updatedAfter)
}

func (c *contractService) GetContract(ctx context.Context, userID int64, id string) (models.Contract, error) {
	return c.contractRepository.GetContract(ctx, userID, id)
}

func (c *contractService) CreateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error) {
	return c.contractRepository.CreateContract(ctx, userID, contract)
}

func (c *contractService) UpdateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error) {
	return c.contractRepository.UpdateContract(ctx, userID, contract)
}

func (c *contractService) BulkUpsert(ctx context.Context, userID int64, contracts []models.Contract) (models.BulkUpsertResponse, error) {
	resp, err := c.contractRepository.BulkUpsert(ctx, userID, contracts)
	if err != nil {
		return models.BulkUpsertResponse{}, err
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", userID).
		Int("received", len(contracts)).
		Int("created", resp.Created).
		Int("updated", resp.Updated).
		Int("rejected", len(resp.Errors)).
		Msg("bulk upsert applied")
	return resp, nil
}
