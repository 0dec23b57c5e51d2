package repo

import (
	"context"
	"sync"

	"facilities/internal/core/facility"
)

// Memory is a process local lifecycle store. It backs tests and runs without a database
type Memory struct {
	mu     sync.RWMutex
	active map[facility.ID]facility.Record
	tombs  map[facility.ID]facility.Tombstone
}

var _ Repo = (*Memory)(nil)

// NewMemory returns an empty store
func NewMemory() *Memory {
	return &Memory{
		active: map[facility.ID]facility.Record{},
		tombs:  map[facility.ID]facility.Tombstone{},
	}
}

// FindAllActiveIDs lists active ids in no particular order
func (m *Memory) FindAllActiveIDs(context.Context) ([]facility.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]facility.ID, 0, len(m.active))
	for id := range m.active {
		out = append(out, id)
	}
	return out, nil
}

// FindActiveByID returns a copy of the stored record
func (m *Memory) FindActiveByID(_ context.Context, id facility.ID) (facility.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.active[id]
	if !ok {
		return facility.Record{}, false, nil
	}
	return cloneRecord(r), true, nil
}

// SaveActive stores a copy of r
func (m *Memory) SaveActive(_ context.Context, r facility.Record) error {
	m.mu.Lock()
	m.active[r.ID] = cloneRecord(r)
	m.mu.Unlock()
	return nil
}

// DeleteActive drops id
func (m *Memory) DeleteActive(_ context.Context, id facility.ID) error {
	m.mu.Lock()
	delete(m.active, id)
	m.mu.Unlock()
	return nil
}

// FindAllTombstoneIDs lists tombstoned ids in no particular order
func (m *Memory) FindAllTombstoneIDs(context.Context) ([]facility.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]facility.ID, 0, len(m.tombs))
	for id := range m.tombs {
		out = append(out, id)
	}
	return out, nil
}

// FindTombstoneByID returns a copy of the stored tombstone
func (m *Memory) FindTombstoneByID(_ context.Context, id facility.ID) (facility.Tombstone, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tombs[id]
	if !ok {
		return facility.Tombstone{}, false, nil
	}
	t.Overlay = t.Overlay.Clone()
	return t, true, nil
}

// SaveTombstone stores a copy of t
func (m *Memory) SaveTombstone(_ context.Context, t facility.Tombstone) error {
	t.Overlay = t.Overlay.Clone()
	m.mu.Lock()
	m.tombs[t.ID] = t
	m.mu.Unlock()
	return nil
}

// DeleteTombstone drops id
func (m *Memory) DeleteTombstone(_ context.Context, id facility.ID) error {
	m.mu.Lock()
	delete(m.tombs, id)
	m.mu.Unlock()
	return nil
}

func cloneRecord(r facility.Record) facility.Record {
	r.Overlay = r.Overlay.Clone()
	if r.MissingTimestamp != nil {
		ts := *r.MissingTimestamp
		r.MissingTimestamp = &ts
	}
	return r
}
