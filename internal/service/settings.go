// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/adapter"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// syncSettings is the persisted implementation of [SyncSettings]. A mutation
// becomes visible only after it has been saved.
type syncSettings struct {
	mu  sync.RWMutex
	cfg models.SyncConfig

	repo   store.SyncStateRepository
	remote adapter.RemoteClient

	// defaultBaseURL is the configured server address, restored when the
	// API base URL override is cleared.
	defaultBaseURL string

	logger *logger.Logger
}

// NewSyncSettings loads the stored configuration, creating and saving the
// defaults on first run. A stored API base URL override is applied to remote.
func NewSyncSettings(ctx context.Context, repo store.SyncStateRepository, remote adapter.RemoteClient, logger *logger.Logger) (SyncSettings, error) {
	cfg, found, err := repo.LoadSyncConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sync config: %w", err)
	}

	if !found {
		cfg = models.DefaultSyncConfig()
		if err = repo.SaveSyncConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("save default sync config: %w", err)
		}
		logger.Info().Str("storage_mode", string(cfg.StorageMode)).Msg("default sync config created")
	}

	if !cfg.StorageMode.Valid() {
		logger.Warn().Str("storage_mode", string(cfg.StorageMode)).Msg("unknown stored storage mode, falling back to local only")
		cfg.StorageMode = models.LocalOnly
	}

	s := &syncSettings{
		cfg:            cfg,
		repo:           repo,
		remote:         remote,
		defaultBaseURL: remote.BaseURL(),
		logger:         logger,
	}

	if cfg.APIBaseURL != "" {
		if err = remote.SetBaseURL(cfg.APIBaseURL); err != nil {
			logger.Err(err).Str("api_base_url", cfg.APIBaseURL).Msg("stored API base URL ignored")
		}
	}

	return s, nil
}

// Get returns a copy of the current configuration.
func (s *syncSettings) Get() models.SyncConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.cfg
	if s.cfg.LastSyncTimestamp != nil {
		ts := *s.cfg.LastSyncTimestamp
		cfg.LastSyncTimestamp = &ts
	}
	return cfg
}

func (s *syncSettings) SetStorageMode(ctx context.Context, mode models.StorageMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStorageMode, mode)
	}

	return s.mutate(ctx, func(cfg *models.SyncConfig) error {
		cfg.StorageMode = mode
		return nil
	})
}

func (s *syncSettings) SetSyncOnLoad(ctx context.Context, enabled bool) error {
	return s.mutate(ctx, func(cfg *models.SyncConfig) error {
		cfg.SyncOnLoad = enabled
		return nil
	})
}

func (s *syncSettings) SetSyncOnSave(ctx context.Context, enabled bool) error {
	return s.mutate(ctx, func(cfg *models.SyncConfig) error {
		cfg.SyncOnSave = enabled
		return nil
	})
}

// SetAPIBaseURL points the remote client at raw. An empty raw restores the
// configured server address. Changing servers resets the last sync time so
// the next sync is a full one. The remote client is switched only once the
// new configuration is saved.
func (s *syncSettings) SetAPIBaseURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)

	target := raw
	if target == "" {
		target = s.defaultBaseURL
	}
	baseURL, err := adapter.NormalizeBaseURL(target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	apply := func(cfg *models.SyncConfig) error {
		if raw == "" {
			cfg.APIBaseURL = ""
		} else {
			cfg.APIBaseURL = baseURL
		}
		if baseURL != s.remote.BaseURL() {
			cfg.LastSyncTimestamp = nil
		}
		return nil
	}

	return s.mutateThen(ctx, apply, func() error {
		if err := s.remote.SetBaseURL(baseURL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
		}
		return nil
	})
}

// SetLastSync records the start time of a fully successful sync.
func (s *syncSettings) SetLastSync(ctx context.Context, at time.Time) error {
	at = at.UTC()
	return s.mutate(ctx, func(cfg *models.SyncConfig) error {
		cfg.LastSyncTimestamp = &at
		return nil
	})
}

func (s *syncSettings) mutate(ctx context.Context, apply func(cfg *models.SyncConfig) error) error {
	return s.mutateThen(ctx, apply, nil)
}

// mutateThen saves the configuration changed by apply and, once saved, runs
// then under the same lock.
func (s *syncSettings) mutateThen(ctx context.Context, apply func(cfg *models.SyncConfig) error, then func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg
	if err := apply(&next); err != nil {
		return err
	}

	if err := s.repo.SaveSyncConfig(ctx, next); err != nil {
		s.logger.Err(err).Str("func", "syncSettings.mutate").Msg("failed to persist sync config")
		return fmt.Errorf("save sync config: %w", err)
	}

	s.cfg = next
	if then != nil {
		return then()
	}
	return nil
}
