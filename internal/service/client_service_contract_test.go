// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/mock"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

func TestClientContractService_CreateDefaultsToDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mock.NewMockSyncSettings(ctrl)
	engine := mock.NewMockSyncEngine(ctrl)
	settings.EXPECT().Get().Return(models.SyncConfig{StorageMode: models.LocalOnly, SyncOnSave: true})

	svc := NewClientContractService(newMemoryContracts(), settings, engine, logger.Nop())

	created, err := svc.Create(context.Background(), models.Contract{ID: "a", Title: "Lease"})
	require.NoError(t, err)
	assert.Equal(t, models.ContractDraft, created.Status)
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestClientContractService_SyncOnSave(t *testing.T) {
	tests := []struct {
		name     string
		cfg      models.SyncConfig
		wantSync bool
	}{
		{
			name:     "sync with server and sync on save",
			cfg:      models.SyncConfig{StorageMode: models.SyncWithServer, SyncOnSave: true},
			wantSync: true,
		},
		{
			name: "sync on save disabled",
			cfg:  models.SyncConfig{StorageMode: models.SyncWithServer},
		},
		{
			name: "local only",
			cfg:  models.SyncConfig{StorageMode: models.LocalOnly, SyncOnSave: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			settings := mock.NewMockSyncSettings(ctrl)
			engine := mock.NewMockSyncEngine(ctrl)

			settings.EXPECT().Get().Return(tt.cfg).Times(2)
			if tt.wantSync {
				engine.EXPECT().RequestSync(gomock.Any(), models.SyncOptions{}).
					Return(models.SyncResult{Success: true, Status: models.StatusSynced}).Times(2)
			}

			svc := NewClientContractService(newMemoryContracts(), settings, engine, logger.Nop())

			created, err := svc.Create(context.Background(), contractAt("a", t0))
			require.NoError(t, err)

			created.Title = "renamed"
			_, err = svc.Update(context.Background(), created)
			require.NoError(t, err)
		})
	}
}

func TestClientContractService_FailedSyncDoesNotFailSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mock.NewMockSyncSettings(ctrl)
	engine := mock.NewMockSyncEngine(ctrl)

	settings.EXPECT().Get().Return(models.SyncConfig{StorageMode: models.SyncWithServer, SyncOnSave: true})
	engine.EXPECT().RequestSync(gomock.Any(), gomock.Any()).
		Return(models.SyncResult{Status: models.StatusOffline, Reason: models.ReasonOffline})

	local := newMemoryContracts()
	svc := NewClientContractService(local, settings, engine, logger.Nop())

	_, err := svc.Create(context.Background(), contractAt("a", t0))
	require.NoError(t, err)
	assert.Equal(t, "a", local.snapshot("a").ID)
}

func TestClientContractService_StoreErrorsSkipSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mock.NewMockSyncSettings(ctrl)
	engine := mock.NewMockSyncEngine(ctrl)

	svc := NewClientContractService(newMemoryContracts(), settings, engine, logger.Nop())

	_, err := svc.Update(context.Background(), contractAt("missing", t0))
	assert.ErrorIs(t, err, store.ErrContractNotFound)

	err = svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrContractNotFound)
}

func TestClientContractService_GetAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := newMemoryContracts(contractAt("b", t0), contractAt("a", t0))
	svc := NewClientContractService(local, mock.NewMockSyncSettings(ctrl), mock.NewMockSyncEngine(ctrl), logger.Nop())

	got, err := svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, contractIDs(list))
}
