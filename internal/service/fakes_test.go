// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// memoryContracts is an in-memory LocalContractRepository. Timestamps are
// supplied by the tests, so Create and Update keep the given UpdatedAt when
// it is set.
type memoryContracts struct {
	mu      sync.Mutex
	records map[string]models.Contract
	puts    int
}

func newMemoryContracts(records ...models.Contract) *memoryContracts {
	m := &memoryContracts{records: make(map[string]models.Contract)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *memoryContracts) Create(_ context.Context, c models.Contract) (models.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[c.ID]; ok {
		return models.Contract{}, store.ErrContractAlreadyExists
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	m.records[c.ID] = c
	return c, nil
}

func (m *memoryContracts) Update(_ context.Context, c models.Contract) (models.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.records[c.ID]
	if !ok {
		return models.Contract{}, store.ErrContractNotFound
	}
	if !c.UpdatedAt.After(prev.UpdatedAt) {
		c.UpdatedAt = prev.UpdatedAt.Add(time.Microsecond)
	}
	m.records[c.ID] = c
	return c, nil
}

func (m *memoryContracts) Get(_ context.Context, id string) (models.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.records[id]
	if !ok {
		return models.Contract{}, store.ErrContractNotFound
	}
	return c, nil
}

func (m *memoryContracts) List(_ context.Context) ([]models.Contract, error) {
	return m.filter(func(models.Contract) bool { return true }), nil
}

func (m *memoryContracts) ListUpdatedAfter(_ context.Context, after time.Time) ([]models.Contract, error) {
	return m.filter(func(c models.Contract) bool { return c.UpdatedAt.After(after) }), nil
}

func (m *memoryContracts) Put(_ context.Context, c models.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[c.ID] = c
	m.puts++
	return nil
}

func (m *memoryContracts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return store.ErrContractNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *memoryContracts) filter(keep func(models.Contract) bool) []models.Contract {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Contract, 0, len(m.records))
	for _, c := range m.records {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryContracts) snapshot(id string) models.Contract {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}

// memoryState is an in-memory SyncStateRepository.
type memoryState struct {
	mu      sync.Mutex
	cfg     models.SyncConfig
	found   bool
	session *models.Session
	queue   map[string]models.RetryEntry
	saveErr error
	saves   int
}

func newMemoryState() *memoryState {
	return &memoryState{queue: make(map[string]models.RetryEntry)}
}

func (s *memoryState) LoadSyncConfig(context.Context) (models.SyncConfig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.found, nil
}

func (s *memoryState) SaveSyncConfig(_ context.Context, cfg models.SyncConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.cfg, s.found = cfg, true
	s.saves++
	return nil
}

func (s *memoryState) LoadSession(context.Context) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.Session{}, store.ErrLocalSessionNotFound
	}
	return *s.session, nil
}

func (s *memoryState) SaveSession(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

func (s *memoryState) ClearSession(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

func (s *memoryState) LoadRetryQueue(context.Context) ([]models.RetryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RetryEntry, 0, len(s.queue))
	for _, e := range s.queue {
		out = append(out, e)
	}
	return out, nil
}

func (s *memoryState) SaveRetryEntries(_ context.Context, entries ...models.RetryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.queue[e.Contract.ID] = e
	}
	return nil
}

func (s *memoryState) DeleteRetryEntries(_ context.Context, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.queue, id)
	}
	return nil
}

func (s *memoryState) ClearRetryQueue(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = make(map[string]models.RetryEntry)
	return nil
}

func (s *memoryState) persistedQueueIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.queue))
	for id := range s.queue {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
