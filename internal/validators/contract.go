package validators

import (
	"context"
	"fmt"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/utils"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// Field names accepted by [ContractValidator.Validate] to restrict validation
// to a subset of rules.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldUpdatedAt = "updated_at"
	FieldStatus    = "status"
	FieldAmount    = "amount"
	FieldTerm      = "term"
	FieldContracts = "contracts"
	FieldRecords   = "records"
	FieldLogin     = "login"
	FieldPassword  = "password"
)

var allowedStatuses = map[string]struct{}{
	"":                       {},
	models.ContractDraft:     {},
	models.ContractActive:    {},
	models.ContractCompleted: {},
	models.ContractCancelled: {},
}

// ContractValidator validates contracts, bulk-upsert requests and
// credentials. Both value and pointer forms are accepted.
type ContractValidator struct{}

// NewContractValidator returns a [Validator] for the contract domain.
func NewContractValidator() Validator {
	return &ContractValidator{}
}

// Validate dispatches on the dynamic type of obj. Returns ErrUnsupportedType
// for anything else.
func (v *ContractValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Contract:
		return v.validateContract(ctx, value, fields...)
	case *models.Contract:
		return v.validateContract(ctx, *value, fields...)
	case models.BulkUpsertRequest:
		return v.validateBulkUpsertRequest(ctx, value, fields...)
	case *models.BulkUpsertRequest:
		return v.validateBulkUpsertRequest(ctx, *value, fields...)
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ContractValidator) validateContract(_ context.Context, c models.Contract, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTitle, FieldUpdatedAt, FieldStatus, FieldAmount, FieldTerm}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !utils.IsUUID(c.ID) {
				return ErrInvalidContractID
			}
		case FieldTitle:
			if c.Title == "" {
				return ErrEmptyTitle
			}
		case FieldUpdatedAt:
			if c.UpdatedAt.IsZero() {
				return ErrEmptyUpdatedAt
			}
		case FieldStatus:
			if _, ok := allowedStatuses[c.Status]; !ok {
				return ErrInvalidStatus
			}
		case FieldAmount:
			if c.AmountCents < 0 {
				return ErrNegativeAmount
			}
		case FieldTerm:
			if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
				return ErrInvalidTerm
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContractValidator) validateBulkUpsertRequest(ctx context.Context, request models.BulkUpsertRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContracts, FieldRecords}
	}

	for _, f := range fields {
		switch f {
		case FieldContracts:
			if len(request.Contracts) == 0 {
				return ErrEmptyContracts
			}
		case FieldRecords:
			for i, c := range request.Contracts {
				if err := v.validateContract(ctx, c); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContractValidator) validateCredentials(_ context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if creds.Login == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if len(creds.Password) < utils.MinPasswordLength {
				return ErrShortPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
