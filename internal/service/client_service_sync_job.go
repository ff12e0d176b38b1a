// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	engine SyncEngine
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that calls engine.RequestSync on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(engine SyncEngine, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{engine: engine, logger: logger}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that requests a sync every interval. In
// local-only mode each tick is answered by the engine without network access.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Info().Dur("interval", interval).Msg("scheduled sync started")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				result := j.engine.RequestSync(jobCtx, models.SyncOptions{})
				if result.Reason != models.ReasonNone && result.Reason != models.ReasonSyncDisabled {
					j.logger.Warn().
						Str("status", string(result.Status)).
						Str("reason", string(result.Reason)).
						Str("detail", result.Detail).
						Msg("scheduled sync did not complete")
				}
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
