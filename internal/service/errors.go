package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrInvalidStorageMode = errors.New("invalid storage mode")
	ErrInvalidBaseURL     = errors.New("invalid API base URL")

	ErrWrongCredentials = errors.New("wrong login or password")
	ErrServerRejected   = errors.New("server rejected the request")

	// errRemotePanic wraps a value recovered from a panicking remote call.
	errRemotePanic = errors.New("remote call panicked")
)
