// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/adapter"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/service"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/tui"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// App is the interactive contract client.
type App struct {
	services     *service.ClientServices
	ui           UI
	syncInterval time.Duration
	closer       func() error
	logger       *logger.Logger

	wg sync.WaitGroup
}

// NewApp opens the local store, builds the remote client and the client
// services, and restores the persisted session.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	remote, err := adapter.NewHTTPRemoteClient(cfg.Adapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create remote client: %w", err)
	}

	services, err := service.NewClientServices(ctx, storages, remote, cfg.Adapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	app := newApp(services, tui.New(services, buildInfo, log), cfg.Workers.SyncInterval, log)
	app.closer = storages.Close
	return app, nil
}

func newApp(services *service.ClientServices, ui UI, syncInterval time.Duration, log *logger.Logger) *App {
	return &App{
		services:     services,
		ui:           ui,
		syncInterval: syncInterval,
		logger:       log,
	}
}

// Services exposes the wired client services to the cobra commands.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// RestoreSession applies the persisted bearer token, if any.
func (a *App) RestoreSession(ctx context.Context) (models.User, bool, error) {
	user, ok, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		return models.User{}, false, fmt.Errorf("restore session: %w", err)
	}
	return user, ok, nil
}

// Run drives the interactive client: login when no session is stored, sync
// on load, scheduled syncs and the main screen. Logging out returns to the
// login flow.
func (a *App) Run(ctx context.Context) error {
	user, ok, err := a.RestoreSession(ctx)
	if err != nil {
		return err
	}

	if !ok {
		user, err = a.ui.LoginFlow(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("login flow: %w", err)
		}
	}

	if a.services.Settings.Get().SyncOnLoad {
		a.syncOnLoad(ctx)
	}

	a.services.SyncJob.Start(ctx, a.syncInterval)
	defer a.services.SyncJob.Stop()

	logout, err := a.ui.MainLoop(ctx, user)
	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}

	if logout {
		if err = a.services.AuthService.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		a.services.SyncJob.Stop()
		return a.Run(ctx)
	}

	return nil
}

// syncOnLoad starts the initial sync in the background. Its progress reaches
// the UI through the status broadcaster.
func (a *App) syncOnLoad(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		result := a.services.Engine.RequestSync(ctx, models.SyncOptions{})
		a.logger.Info().
			Str("status", string(result.Status)).
			Str("reason", string(result.Reason)).
			Str("detail", result.Detail).
			Msg("sync on load finished")
	}()
}

// Close waits for background work and releases the local store.
func (a *App) Close() error {
	a.wg.Wait()
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
