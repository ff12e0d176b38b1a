package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidContractID = errors.New("id must be a UUID")
	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptyUpdatedAt    = errors.New("updatedAt is required")
	ErrInvalidStatus     = errors.New("unknown contract status")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrInvalidTerm       = errors.New("end date is before start date")
	ErrEmptyContracts    = errors.New("contracts list cannot be empty")
	ErrEmptyLogin        = errors.New("login is required")
	ErrShortPassword     = errors.New("password is too short")
)
