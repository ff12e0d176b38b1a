// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/adapter"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/mock"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

func TestClientAuthService_LoginPersistsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteClient(ctrl)
	state := newMemoryState()

	creds := models.Credentials{Login: "anna", Password: "password1"}
	user := models.User{UserID: 7, Login: "anna"}

	remote.EXPECT().Login(gomock.Any(), creds).Return(user, nil)
	remote.EXPECT().Token().Return("jwt-token")

	svc := NewClientAuthService(remote, state, logger.Nop())

	got, err := svc.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	require.NotNil(t, state.session)
	assert.Equal(t, "jwt-token", state.session.Token)
	assert.Equal(t, user, state.session.User)
}

func TestClientAuthService_RegisterPersistsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteClient(ctrl)
	state := newMemoryState()

	creds := models.Credentials{Login: "anna", Password: "password1", Name: "Anna"}
	remote.EXPECT().Register(gomock.Any(), creds).Return(models.User{UserID: 1, Login: "anna"}, nil)
	remote.EXPECT().Token().Return("jwt-token")

	svc := NewClientAuthService(remote, state, logger.Nop())

	_, err := svc.Register(context.Background(), creds)
	require.NoError(t, err)
	require.NotNil(t, state.session)
}

func TestClientAuthService_MapsAdapterErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "unauthorized", err: fmt.Errorf("%w: status 401", adapter.ErrUnauthorized), wantErr: ErrWrongCredentials},
		{name: "conflict", err: fmt.Errorf("%w: status 409", adapter.ErrConflict), wantErr: store.ErrLoginAlreadyExists},
		{name: "validation", err: fmt.Errorf("%w: status 400", adapter.ErrValidation), wantErr: ErrInvalidDataProvided},
		{name: "server", err: fmt.Errorf("%w: status 500", adapter.ErrServer), wantErr: ErrServerRejected},
		{name: "network", err: fmt.Errorf("%w: refused", adapter.ErrNetwork), wantErr: adapter.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			remote := mock.NewMockRemoteClient(ctrl)
			state := newMemoryState()

			remote.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, tt.err)

			svc := NewClientAuthService(remote, state, logger.Nop())

			_, err := svc.Login(context.Background(), models.Credentials{Login: "anna", Password: "password1"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, state.session)
		})
	}
}

func TestClientAuthService_RestoreSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteClient(ctrl)
	state := newMemoryState()

	svc := NewClientAuthService(remote, state, logger.Nop())

	_, ok, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	user := models.User{UserID: 3, Login: "anna"}
	state.session = &models.Session{Token: "saved-token", User: user, At: t0}
	remote.EXPECT().SetToken("saved-token")

	got, ok, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestClientAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteClient(ctrl)
	state := newMemoryState()
	state.session = &models.Session{Token: "saved-token"}

	remote.EXPECT().SetToken("")

	svc := NewClientAuthService(remote, state, logger.Nop())

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, state.session)
}
