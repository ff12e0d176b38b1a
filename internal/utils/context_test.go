// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDCtxKey_String(t *testing.T) {
	assert.Equal(t, "userID", UserIDCtxKey.String())
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{"present", context.WithValue(context.Background(), UserIDCtxKey, int64(42)), 42, true},
		{"missing", context.Background(), 0, false},
		{"wrong type", context.WithValue(context.Background(), UserIDCtxKey, "42"), 0, false},
		{"plain string key", context.WithValue(context.Background(), "userID", int64(42)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
