package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"facilities/internal/core/facility"
	ptime "facilities/internal/platform/time"
	"facilities/internal/services/facilities/domain"
	"facilities/internal/services/facilities/repo"
)

var t0 = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func id(s string) facility.ID { return facility.MustParseID(s) }

// valid returns a payload that passes every validation rule
func valid(s string) facility.Payload {
	return facility.Payload{
		ID:             id(s),
		Name:           "Facility " + s,
		Classification: "Primary Care CBOC",
		Address: facility.Addresses{
			Physical: &facility.Address{Address1: "1 Main St", City: "Reno", State: "NV", Zip: "89502"},
		},
		Latitude:  ptr(39.5),
		Longitude: ptr(-119.8),
		Phone:     facility.Phone{Main: "775-786-7200"},
		Hours: facility.Hours{
			Monday: "800AM-430PM", Tuesday: "800AM-430PM", Wednesday: "800AM-430PM",
			Thursday: "800AM-430PM", Friday: "800AM-430PM", Saturday: "Closed", Sunday: "Closed",
		},
	}
}

// snapshot is a fixed collector
type snapshot []facility.Payload

func (s snapshot) Collect(context.Context) ([]facility.Payload, error) { return s, nil }

// faulty wraps the memory store and fails selected mutations
type faulty struct {
	*repo.Memory
	mu       sync.Mutex
	failSave map[facility.ID]error
	failDelT map[facility.ID]error
	failLoad map[facility.ID]error
	vanish   map[facility.ID]bool // active row is removed right before it is loaded
	listErr  error
}

func newFaulty() *faulty {
	return &faulty{
		Memory:   repo.NewMemory(),
		failSave: map[facility.ID]error{},
		failDelT: map[facility.ID]error{},
		failLoad: map[facility.ID]error{},
		vanish:   map[facility.ID]bool{},
	}
}

func (f *faulty) SaveActive(ctx context.Context, r facility.Record) error {
	f.mu.Lock()
	err := f.failSave[r.ID]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Memory.SaveActive(ctx, r)
}

func (f *faulty) DeleteTombstone(ctx context.Context, i facility.ID) error {
	f.mu.Lock()
	err := f.failDelT[i]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Memory.DeleteTombstone(ctx, i)
}

func (f *faulty) FindActiveByID(ctx context.Context, i facility.ID) (facility.Record, bool, error) {
	f.mu.Lock()
	err, gone := f.failLoad[i], f.vanish[i]
	delete(f.vanish, i)
	f.mu.Unlock()
	if err != nil {
		return facility.Record{}, false, err
	}
	if gone {
		if err := f.Memory.DeleteActive(ctx, i); err != nil {
			return facility.Record{}, false, err
		}
	}
	return f.Memory.FindActiveByID(ctx, i)
}

func (f *faulty) FindAllActiveIDs(ctx context.Context) ([]facility.ID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Memory.FindAllActiveIDs(ctx)
}

var errDisk = errors.New("disk full")

// clock is an adjustable test clock
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time { c.mu.Lock(); defer c.mu.Unlock(); return c.now }

func (c *clock) set(t time.Time) { c.mu.Lock(); c.now = t; c.mu.Unlock() }

var _ ptime.Clock = (*clock)(nil)

// switchable is a collector whose snapshot changes between cycles
type switchable struct {
	mu   sync.Mutex
	snap snapshot
	err  error
}

func (s *switchable) set(snap snapshot) { s.mu.Lock(); s.snap = snap; s.mu.Unlock() }

func (s *switchable) Collect(context.Context) ([]facility.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.err
}

func newSvc(st domain.LifecycleStore, col domain.Collector, c ptime.Clock, opts ...Option) *Svc {
	cfg := Config{TombstoneAfter: 72 * time.Hour, Workers: 4}
	return New(st, col, cfg, append([]Option{WithClock(c)}, opts...)...)
}

func seedActive(st domain.LifecycleStore, p facility.Payload, ov facility.Overlay, missing *time.Time) {
	r := facility.NewRecord(p, ov, t0.Add(-240*time.Hour))
	r.MissingTimestamp = missing
	_ = st.SaveActive(context.Background(), r)
}

func sameIDs(got []facility.ID, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].String() != want[i] {
			return false
		}
	}
	return true
}
