// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/mock"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/service"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

type mainFixture struct {
	engine       *mock.MockSyncEngine
	contracts    *mock.MockClientContractService
	settings     *mock.MockSyncSettings
	publish      func(models.StatusEvent)
	unsubscribed int
	model        mainLoopModel
}

func newMainFixture(t *testing.T) *mainFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &mainFixture{
		engine:    mock.NewMockSyncEngine(ctrl),
		contracts: mock.NewMockClientContractService(ctrl),
		settings:  mock.NewMockSyncSettings(ctrl),
	}

	f.engine.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(fn func(models.StatusEvent)) func() {
		f.publish = fn
		return func() { f.unsubscribed++ }
	})
	f.engine.EXPECT().Status().Return(models.StatusEvent{Status: models.StatusIdle}).AnyTimes()

	services := &service.ClientServices{
		Engine:          f.engine,
		ContractService: f.contracts,
		Settings:        f.settings,
	}
	f.model = newMainLoopModel(context.Background(), services, models.User{Login: "anna"})
	f.model.loading = false
	t.Cleanup(f.model.feed.close)

	return f
}

func update(t *testing.T, m mainLoopModel, msg tea.Msg) (mainLoopModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(mainLoopModel)
	require.True(t, ok)
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMainLoop_StatusEventsAreRendered(t *testing.T) {
	f := newMainFixture(t)
	require.NotNil(t, f.publish)

	event := models.StatusEvent{Status: models.StatusWarning, Detail: "Download: ok (2 received) | Upload: 1 of 3 failed"}
	f.publish(event)

	msg := f.model.feed.wait()()
	m, cmd := update(t, f.model, msg)

	assert.Equal(t, event, m.status)
	assert.NotNil(t, cmd, "the feed must be re-armed")

	f.settings.EXPECT().Get().Return(models.SyncConfig{StorageMode: models.SyncWithServer, SyncOnSave: true})
	f.engine.EXPECT().FailedRecords().Return([]models.RetryEntry{{}})

	view := m.View()
	assert.Contains(t, view, "WARNING")
	assert.Contains(t, view, "Upload: 1 of 3 failed")
	assert.Contains(t, view, "Retry queue: 1 record(s)")
	assert.Contains(t, view, "last sync: never")
}

func TestMainLoop_SyncKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
		opts models.SyncOptions
	}{
		{name: "sync", key: "s", opts: models.SyncOptions{}},
		{name: "forced sync", key: "f", opts: models.SyncOptions{Force: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMainFixture(t)

			f.engine.EXPECT().RequestSync(gomock.Any(), tt.opts).Return(models.SyncResult{
				Success: true,
				Status:  models.StatusSynced,
				Detail:  "Download: ok (1 received) | Upload: ok (0 sent)",
			})

			m, cmd := update(t, f.model, keyRunes(tt.key))
			assert.Equal(t, 1, m.running)
			require.NotNil(t, cmd)

			done, ok := cmd().(syncDoneMsg)
			require.True(t, ok)

			f.contracts.EXPECT().List(gomock.Any()).Return([]models.Contract{{ID: "a", Title: "Lease"}}, nil)

			m, cmd = update(t, m, done)
			assert.Equal(t, 0, m.running)
			assert.True(t, m.loading)
			assert.Equal(t, "Download: ok (1 received) | Upload: ok (0 sent)", m.notice)

			m, _ = update(t, m, cmd())
			assert.False(t, m.loading)
			assert.Len(t, m.items, 1)
		})
	}
}

func TestMainLoop_RetryRejectedWhileSyncing(t *testing.T) {
	f := newMainFixture(t)

	f.engine.EXPECT().RetryFailed(gomock.Any()).Return(models.SyncResult{
		Status: models.StatusSyncing,
		Reason: models.ReasonAlreadySyncing,
		Detail: "a sync is already running",
	})
	f.contracts.EXPECT().List(gomock.Any()).Return(nil, nil)

	m, cmd := update(t, f.model, keyRunes("r"))
	m, _ = update(t, m, cmd())

	assert.Equal(t, "a sync is already running", m.notice)
}

func TestMainLoop_ClearQueue(t *testing.T) {
	f := newMainFixture(t)

	f.engine.EXPECT().ClearRetryQueue(gomock.Any()).Return(nil)

	m, cmd := update(t, f.model, keyRunes("x"))
	m, _ = update(t, m, cmd())

	assert.Equal(t, "Retry queue cleared", m.notice)
}

func TestMainLoop_ToggleSettings(t *testing.T) {
	t.Run("storage mode", func(t *testing.T) {
		f := newMainFixture(t)

		f.settings.EXPECT().Get().Return(models.SyncConfig{StorageMode: models.LocalOnly})
		f.settings.EXPECT().SetStorageMode(gomock.Any(), models.SyncWithServer).Return(nil)

		m, cmd := update(t, f.model, keyRunes("m"))
		m, _ = update(t, m, cmd())

		assert.Equal(t, "Storage mode: SYNC_WITH_SERVER", m.notice)
	})

	t.Run("sync on save fails to persist", func(t *testing.T) {
		f := newMainFixture(t)

		f.settings.EXPECT().Get().Return(models.SyncConfig{SyncOnSave: true})
		f.settings.EXPECT().SetSyncOnSave(gomock.Any(), false).Return(errors.New("disk full"))

		m, cmd := update(t, f.model, keyRunes("o"))
		m, _ = update(t, m, cmd())

		assert.Equal(t, "disk full", m.errMsg)
		assert.Empty(t, m.notice)
	})
}

func TestMainLoop_CreateContract(t *testing.T) {
	f := newMainFixture(t)

	m, _ := update(t, f.model, keyRunes("n"))
	require.Equal(t, editorNew, m.editing)

	m, _ = update(t, m, keyRunes("Office lease"))

	created := models.Contract{ID: "new-id", Title: "Office lease", Status: models.ContractDraft}
	f.contracts.EXPECT().Create(gomock.Any(), models.Contract{Title: "Office lease"}).Return(created, nil)
	f.contracts.EXPECT().List(gomock.Any()).Return([]models.Contract{created}, nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, cmd = update(t, m, cmd())
	assert.Equal(t, editorNone, m.editing)
	assert.Equal(t, `Saved "Office lease"`, m.notice)

	m, _ = update(t, m, cmd())
	assert.Equal(t, []models.Contract{created}, m.items)
}

func TestMainLoop_EditorValidation(t *testing.T) {
	f := newMainFixture(t)

	m, _ := update(t, f.model, keyRunes("n"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "Title is required", m.errMsg)
	assert.Equal(t, editorNew, m.editing)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, editorNone, m.editing)
}

func TestMainLoop_EditTitle(t *testing.T) {
	f := newMainFixture(t)
	f.model.items = []models.Contract{{ID: "a", Title: "Old"}, {ID: "b", Title: "Other"}}

	m, _ := update(t, f.model, keyRunes("e"))
	require.Equal(t, editorTitle, m.editing)
	assert.Equal(t, "Old", m.editor.Value())

	m.editor.SetValue("New")
	f.contracts.EXPECT().Update(gomock.Any(), models.Contract{ID: "a", Title: "New"}).
		Return(models.Contract{ID: "a", Title: "New"}, nil)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	saved, ok := cmd().(contractSavedMsg)
	require.True(t, ok)
	assert.NoError(t, saved.err)
}

func TestMainLoop_CopyID(t *testing.T) {
	f := newMainFixture(t)
	f.model.items = []models.Contract{{ID: "a"}, {ID: "b"}}

	var copied string
	original := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })

	m, _ := update(t, f.model, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, keyRunes("c"))

	assert.Equal(t, "b", copied)
	assert.Equal(t, "Copied b", m.notice)
}

func TestMainLoop_QuitAndLogout(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		f := newMainFixture(t)

		m, cmd := update(t, f.model, keyRunes("q"))

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.False(t, m.logout)
		assert.Equal(t, 1, f.unsubscribed)

		m.feed.close()
		assert.Equal(t, 1, f.unsubscribed, "closing twice unsubscribes once")
		assert.Nil(t, m.feed.wait()(), "a closed feed stops waiting")
	})

	t.Run("logout", func(t *testing.T) {
		f := newMainFixture(t)

		m, cmd := update(t, f.model, keyRunes("l"))

		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.logout)
	})
}
