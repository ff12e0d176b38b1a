// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
)

var (
	// ErrNetwork wraps transport failures: connection refused, DNS, reset,
	// cancelled requests.
	ErrNetwork = errors.New("network error")
	// ErrTimeout is wrapped together with ErrNetwork when a request exceeded
	// its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrUnauthorized is returned for 401 and 403.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrServer is returned for 5xx and malformed responses.
	ErrServer = errors.New("server error")
	// ErrValidation is returned for 400 and 422.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned for 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for 409.
	ErrConflict = errors.New("conflict")
)

// ErrorKind is the coarse classification of a RemoteClient error.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindNetwork      ErrorKind = "network"
	KindTimeout      ErrorKind = "timeout"
	KindUnauthorized ErrorKind = "unauthorized"
	KindServer       ErrorKind = "server"
	KindValidation   ErrorKind = "validation"
)

// KindOf classifies err. Errors not produced by this package are reported as
// KindServer so that unexpected failures are never mistaken for success.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound):
		return KindValidation
	default:
		return KindServer
	}
}
