// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/validators"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// ContractServiceWrapper defines middleware composition for ContractService.
// Implementations wrap an existing ContractService to add behavior such as
// validation.
type ContractServiceWrapper interface {
	ContractService
	Wrap(ContractService) ContractService
}

// ContractValidationService rejects invalid contracts before they reach the
// wrapped service. Bulk upserts are validated per record: invalid records
// are reported in the response and the rest are passed on.
type ContractValidationService struct {
	inner     ContractService
	validator validators.Validator
}

func NewContractValidationService() ContractServiceWrapper {
	return &ContractValidationService{
		validator: validators.NewContractValidator(),
	}
}

func (v *ContractValidationService) ListContracts(ctx context.Context, userID int64, updatedAfter *time.Time) ([]models.Contract, error) {
	return v.inner.ListContracts(ctx, userID, updatedAfter)
}

func (v *ContractValidationService) GetContract(ctx context.Context, userID int64, id string) (models.Contract, error) {
	if err := v.validator.Validate(ctx, models.Contract{ID: id}, validators.FieldID); err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.GetContract(ctx, userID, id)
}

func (v *ContractValidationService) CreateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error) {
	if err := v.validator.Validate(ctx, contract); err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateContract(ctx, userID, contract)
}

func (v *ContractValidationService) UpdateContract(ctx context.Context, userID int64, contract models.Contract) (models.Contract, error) {
	if err := v.validator.Validate(ctx, contract); err != nil {
		return models.Contract{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.UpdateContract(ctx, userID, contract)
}

func (v *ContractValidationService) BulkUpsert(ctx context.Context, userID int64, contracts []models.Contract) (models.BulkUpsertResponse, error) {
	valid := make([]models.Contract, 0, len(contracts))
	rejected := make([]models.BulkUpsertError, 0)

	for _, c := range contracts {
		if err := v.validator.Validate(ctx, c); err != nil {
			rejected = append(rejected, models.BulkUpsertError{ID: c.ID, Error: err.Error()})
			continue
		}
		valid = append(valid, c)
	}

	resp, err := v.inner.BulkUpsert(ctx, userID, valid)
	if err != nil {
		return models.BulkUpsertResponse{}, err
	}

	resp.Errors = append(rejected, resp.Errors...)
	return resp, nil
}

func (v *ContractValidationService) Wrap(wrapper ContractService) ContractService {
	v.inner = wrapper
	return v
}
