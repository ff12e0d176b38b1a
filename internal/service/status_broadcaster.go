// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

type subscription struct {
	id uint64
	fn func(models.StatusEvent)
}

// StatusBroadcaster holds the current sync status and delivers every
// transition to its subscribers, in subscription order.
//
// Subscribers run synchronously on the goroutine that changed the status and
// must not call back into the engine.
type StatusBroadcaster struct {
	mu      sync.RWMutex
	current models.StatusEvent
	subs    []subscription
	nextID  uint64

	// deliver serialises publishing so subscribers observe transitions in
	// the order they happened.
	deliver sync.Mutex

	now    func() time.Time
	logger *logger.Logger
}

// NewStatusBroadcaster returns a broadcaster in status IDLE.
func NewStatusBroadcaster(logger *logger.Logger) *StatusBroadcaster {
	b := &StatusBroadcaster{now: time.Now, logger: logger}
	b.current = models.StatusEvent{Status: models.StatusIdle, At: b.now()}
	return b
}

// Subscribe registers fn and returns a function removing it. Calling the
// returned function more than once is harmless.
func (b *StatusBroadcaster) Subscribe(fn func(models.StatusEvent)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Current returns the last published status.
func (b *StatusBroadcaster) Current() models.StatusEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// set is the only place the status changes. It records the new status and
// publishes it as a [models.StatusChangedEvent].
func (b *StatusBroadcaster) set(status models.SyncStatus, detail string, cause error) models.StatusEvent {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	event := models.StatusEvent{Status: status, Detail: detail, Cause: cause, At: b.now()}

	b.mu.Lock()
	b.current = event
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	b.logger.Debug().
		Str("event", models.StatusChangedEvent).
		Str("status", string(status)).
		Str("detail", detail).
		Int("subscribers", len(subs)).
		Msg("sync status changed")

	for _, s := range subs {
		b.notify(s, event)
	}

	return event
}

func (b *StatusBroadcaster) notify(s subscription, event models.StatusEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Any("panic", r).
				Uint64("subscription", s.id).
				Msg("status subscriber panicked")
		}
	}()
	s.fn(event)
}
