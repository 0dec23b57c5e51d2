package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"facilities/internal/core/facility"
	"facilities/internal/core/lifecycle"
	"facilities/internal/core/report"
	"facilities/internal/core/validate"
	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/logger"
	ptime "facilities/internal/platform/time"
	"facilities/internal/services/facilities/domain"
)

// DuplicateInSnapshot is reported for every repeat of an id after its first occurrence
const DuplicateInSnapshot = "Duplicate record in snapshot"

// Engine reconciles one snapshot against the lifecycle store
type Engine struct {
	store     domain.LifecycleStore
	clock     ptime.Clock
	threshold time.Duration
	workers   int
	purge     PurgePolicy
	validate  func(facility.Payload) []string
}

// NewEngine builds an engine. A non-positive worker count runs one record at a time
func NewEngine(st domain.LifecycleStore, cfg Config, clock ptime.Clock) *Engine {
	if st == nil {
		panic("facilities.Engine requires a non nil LifecycleStore")
	}
	if clock == nil {
		clock = ptime.System{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	purge := cfg.Purge
	if purge == nil {
		purge = NeverPurge{}
	}
	return &Engine{
		store:     st,
		clock:     clock,
		threshold: cfg.TombstoneAfter,
		workers:   workers,
		purge:     purge,
		validate:  validate.Facility,
	}
}

// Reconcile applies payloads to the stores and accumulates the outcome on b.
// With sweep set, active ids left out of payloads move towards tombstoning and
// tombstones may be purged. Only a failed id scan or a dead context fails the call
func (e *Engine) Reconcile(ctx context.Context, payloads []facility.Payload, b *report.Builder, sweep bool) error {
	activeIDs, err := e.store.FindAllActiveIDs(ctx)
	if err != nil {
		return perr.WrapIf(err, perr.ErrorCodeDB, "list active ids")
	}
	tombIDs, err := e.store.FindAllTombstoneIDs(ctx)
	if err != nil {
		return perr.WrapIf(err, perr.ErrorCodeDB, "list tombstone ids")
	}
	active := facility.NewIDSet(activeIDs...)
	tombs := facility.NewIDSet(tombIDs...)
	now := e.clock.Now()

	seen := make(facility.IDSet, len(payloads))
	unique := make([]facility.Payload, 0, len(payloads))
	for _, p := range payloads {
		if p.ID.IsZero() {
			b.Problem(p.ID, "Missing facility id")
			continue
		}
		if seen.Has(p.ID) {
			b.Problem(p.ID, DuplicateInSnapshot)
			continue
		}
		seen.Add(p.ID)
		unique = append(unique, p)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	submit := func(fn func(context.Context) outcome) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := fn(gctx)
			if o.failed() {
				logger.C(gctx).Warn().
					Str("facility_id", o.id.String()).
					Strs("problems", o.problems).
					Msg("record attempt failed")
			}
			o.record(b)
			return nil
		})
	}

	for _, p := range unique {
		p := p
		b.Problems(p.ID, e.validate(p))
		submit(func(ctx context.Context) outcome {
			return e.present(ctx, p, active.Has(p.ID), tombs.Has(p.ID), now)
		})
	}
	if sweep {
		for _, id := range activeIDs {
			id := id
			if seen.Has(id) {
				continue
			}
			submit(func(ctx context.Context) outcome { return e.absent(ctx, id, now) })
		}
		if purges(e.purge) {
			for _, id := range tombIDs {
				id := id
				if seen.Has(id) || active.Has(id) {
					continue
				}
				submit(func(ctx context.Context) outcome { return e.purgeOne(ctx, id, now) })
			}
		}
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return perr.Wrap(err, perr.ErrorCodeTimeout, "reconcile deadline exceeded")
		}
		return perr.WrapIf(err, perr.ErrorCodeUnavailable, "reconcile interrupted")
	}
	return nil
}

// present handles an id found in the snapshot: create, overwrite or revive
func (e *Engine) present(ctx context.Context, p facility.Payload, isActive, isTomb bool, now time.Time) outcome {
	state := lifecycle.Absent
	var overlay facility.Overlay

	found := false
	if isActive {
		rec, ok, err := e.store.FindActiveByID(ctx, p.ID)
		if err != nil {
			return failure(p.ID, "load record", err)
		}
		if ok {
			found, state, overlay = true, lifecycle.Active, rec.Overlay
			if rec.Missing() {
				state = lifecycle.Missing
			}
		}
	}
	// the active row can vanish after the id scan; the tombstone then holds the overlay
	if !found && isTomb {
		ts, ok, err := e.store.FindTombstoneByID(ctx, p.ID)
		if err != nil {
			return failure(p.ID, "load tombstone", err)
		}
		if ok {
			state, overlay = lifecycle.Tombstoned, ts.Overlay
		}
	}

	t := lifecycle.Decide(state, true, time.Time{}, now, e.threshold)
	if err := e.store.SaveActive(ctx, facility.NewRecord(p, overlay, now)); err != nil {
		return failure(p.ID, "save record", err)
	}
	o := done(p.ID, t.Outcome)

	// a tombstone goes only once its active replacement is durable; a stale one next
	// to an active row is the remains of an earlier failed revive
	if t.Action == lifecycle.Revive || isTomb {
		if err := e.store.DeleteTombstone(ctx, p.ID); err != nil {
			return o.also("delete tombstone", err)
		}
	}
	return o
}

// absent handles an active id left out of the snapshot
func (e *Engine) absent(ctx context.Context, id facility.ID, now time.Time) outcome {
	rec, ok, err := e.store.FindActiveByID(ctx, id)
	if err != nil {
		return failure(id, "load record", err)
	}
	if !ok {
		return done(id, lifecycle.OutcomeNone)
	}
	state := lifecycle.Active
	var since time.Time
	if rec.Missing() {
		state, since = lifecycle.Missing, *rec.MissingTimestamp
	}

	t := lifecycle.Decide(state, false, since, now, e.threshold)
	switch t.Action {
	case lifecycle.MarkMissing:
		rec.MissingTimestamp = &now
		if err := e.store.SaveActive(ctx, rec); err != nil {
			return failure(id, "save record", err)
		}
	case lifecycle.Entomb:
		if err := e.store.SaveTombstone(ctx, facility.Entomb(rec, now)); err != nil {
			return failure(id, "save tombstone", err)
		}
		if err := e.store.DeleteActive(ctx, id); err != nil {
			return failure(id, "delete record", err)
		}
	}
	return done(id, t.Outcome)
}

// purgeOne drops a tombstone the policy no longer wants
func (e *Engine) purgeOne(ctx context.Context, id facility.ID, now time.Time) outcome {
	ts, ok, err := e.store.FindTombstoneByID(ctx, id)
	if err != nil {
		return failure(id, "load tombstone", err)
	}
	if !ok || !e.purge.ShouldPurge(ts, now) {
		return done(id, lifecycle.OutcomeNone)
	}
	if err := e.store.DeleteTombstone(ctx, id); err != nil {
		return failure(id, "delete tombstone", err)
	}
	return done(id, lifecycle.OutcomePurged)
}
