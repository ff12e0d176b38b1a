// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/adapter"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/service"
)

// ErrUserQuit is returned by the login flow when the user leaves it.
var ErrUserQuit = errors.New("user quit")

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrWrongCredentials):
		return "Wrong login or password"
	case errors.Is(err, service.ErrInvalidBaseURL):
		return "Invalid server address"
	}

	switch adapter.KindOf(err) {
	case adapter.KindNetwork:
		return "No network or the server is unavailable"
	case adapter.KindTimeout:
		return "The server did not answer in time"
	case adapter.KindUnauthorized:
		return "Not authenticated"
	}

	return err.Error()
}
