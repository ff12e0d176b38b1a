// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the client and the server:
// typed context keys, JSON response writing, the resty HTTP client wrapper,
// JWT handling, password hashing and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user's ID in a request context.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext returns the user ID stored under UserIDCtxKey and
// whether it was present with the expected int64 type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
