// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// RetryQueue holds the records whose last upload failed, keyed by contract
// id. Entries leave the queue only after a successful upload or an explicit
// Clear.
//
// The in-memory map is authoritative for the session. When a repository is
// set every change is also written through to it; a failed write is
// reported but does not roll back the in-memory change.
type RetryQueue struct {
	mu      sync.RWMutex
	entries map[string]models.RetryEntry

	repo   store.SyncStateRepository
	now    func() time.Time
	logger *logger.Logger
}

// NewRetryQueue returns an empty queue persisted through repo. repo may be
// nil for a session-only queue.
func NewRetryQueue(repo store.SyncStateRepository, logger *logger.Logger) *RetryQueue {
	return &RetryQueue{
		entries: make(map[string]models.RetryEntry),
		repo:    repo,
		now:     time.Now,
		logger:  logger,
	}
}

// Load replaces the in-memory entries with the persisted ones.
func (q *RetryQueue) Load(ctx context.Context) error {
	if q.repo == nil {
		return nil
	}

	entries, err := q.repo.LoadRetryQueue(ctx)
	if err != nil {
		return fmt.Errorf("load retry queue: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = make(map[string]models.RetryEntry, len(entries))
	for _, e := range entries {
		q.entries[e.Contract.ID] = e
	}

	q.logger.Debug().Int("entries", len(entries)).Msg("retry queue loaded")
	return nil
}

// Add records a failed upload of contract, replacing any earlier entry for
// the same id. The attempts counter carries over from the replaced entry.
func (q *RetryQueue) Add(ctx context.Context, contract models.Contract, cause string) error {
	q.mu.Lock()
	entry := models.RetryEntry{
		Contract:  contract,
		LastError: cause,
		Attempts:  q.entries[contract.ID].Attempts + 1,
		FailedAt:  q.now().UTC(),
	}
	q.entries[contract.ID] = entry
	q.mu.Unlock()

	if q.repo == nil {
		return nil
	}
	if err := q.repo.SaveRetryEntries(ctx, entry); err != nil {
		return fmt.Errorf("persist retry entry %s: %w", contract.ID, err)
	}
	return nil
}

// RemoveSucceeded drops the entries of ids. Unknown ids are ignored.
func (q *RetryQueue) RemoveSucceeded(ctx context.Context, ids ...string) error {
	q.mu.Lock()
	removed := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := q.entries[id]; ok {
			delete(q.entries, id)
			removed = append(removed, id)
		}
	}
	q.mu.Unlock()

	if q.repo == nil || len(removed) == 0 {
		return nil
	}
	if err := q.repo.DeleteRetryEntries(ctx, removed...); err != nil {
		return fmt.Errorf("delete retry entries: %w", err)
	}
	return nil
}

// List returns the entries ordered by failure time, oldest first.
func (q *RetryQueue) List() []models.RetryEntry {
	q.mu.RLock()
	list := make([]models.RetryEntry, 0, len(q.entries))
	for _, e := range q.entries {
		list = append(list, e)
	}
	q.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].FailedAt.Equal(list[j].FailedAt) {
			return list[i].FailedAt.Before(list[j].FailedAt)
		}
		return list[i].Contract.ID < list[j].Contract.ID
	})
	return list
}

// Contains reports whether id is queued.
func (q *RetryQueue) Contains(id string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	_, ok := q.entries[id]
	return ok
}

// Len returns the number of queued records.
func (q *RetryQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}

// Clear drops every entry.
func (q *RetryQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	q.entries = make(map[string]models.RetryEntry)
	q.mu.Unlock()

	if q.repo == nil {
		return nil
	}
	if err := q.repo.ClearRetryQueue(ctx); err != nil {
		return fmt.Errorf("clear retry queue: %w", err)
	}
	return nil
}
