// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyEngine counts RequestSync calls. Only RequestSync is exercised by the
// job; the remaining methods satisfy SyncEngine.
type spyEngine struct {
	calls  atomic.Int64
	result models.SyncResult
	opts   atomic.Value
}

func (s *spyEngine) RequestSync(_ context.Context, opts models.SyncOptions) models.SyncResult {
	s.calls.Add(1)
	s.opts.Store(opts)
	return s.result
}

func (s *spyEngine) RetryFailed(context.Context) models.SyncResult { return models.SyncResult{} }
func (s *spyEngine) ClearRetryQueue(context.Context) error { return nil }
func (s *spyEngine) FailedRecords() []models.RetryEntry { return nil }
func (s *spyEngine) Status() models.StatusEvent { return models.StatusEvent{} }
func (s *spyEngine) LastResult() (models.SyncResult, bool) { return models.SyncResult{}, false }
func (s *spyEngine) Subscribe(func(models.StatusEvent)) func() { return func() {} }

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	job := NewClientSyncJob(&spyEngine{}, logger.Nop())
	require.NotNil(t, job)

	var _ ClientSyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_RequestsSync(t *testing.T) {
	spy := &spyEngine{}
	job := NewClientSyncJob(spy, logger.Nop())

	// 10ms interval, about five ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "RequestSync called %d times", got)
	assert.Equal(t, models.SyncOptions{}, spy.opts.Load(), "scheduled syncs are never forced")
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyEngine{}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls after Stop")
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spyEngine{}, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spyEngine{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_Start_DefaultInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spyEngine{}
		job := NewClientSyncJob(spy, logger.Nop())
		ctx, cancel := context.WithCancel(context.Background())

		// falls back to five minutes, so nothing fires within 20ms
		job.Start(ctx, interval)
		time.Sleep(20 * time.Millisecond)
		cancel()
		job.Stop()

		assert.Equal(t, int64(0), spy.calls.Load(), "interval %s", interval)
	}
}

func TestClientSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spyEngine{}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore, "the restarted job keeps ticking")
}

func TestClientSyncJob_ContextCancel_StopsJob(t *testing.T) {
	job := NewClientSyncJob(&spyEngine{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestClientSyncJob_FailedSync_DoesNotStopJob(t *testing.T) {
	spy := &spyEngine{result: models.SyncResult{Status: models.StatusError, Reason: models.ReasonNetwork}}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "failed syncs keep the job running: %d", got)
}
