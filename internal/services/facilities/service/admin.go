package service

import (
	"context"
	"errors"

	"facilities/internal/core/facility"
	"facilities/internal/core/lifecycle"
	perr "facilities/internal/platform/errors"
	"facilities/internal/services/facilities/domain"
	"facilities/internal/services/facilities/guardrails"
)

// ErrDeleteBusy is returned when a delete arrives while a reload holds the store.
// It is retryable, unlike the conflict raised for curated overlays
var ErrDeleteBusy = perr.New(perr.ErrorCodeUnavailable, "reload in progress, retry the delete shortly")

// Lookup reports where a facility sits in its lifecycle
func (s *Svc) Lookup(ctx context.Context, id facility.ID) (domain.LifecycleView, error) {
	rec, okRec, err := s.store.FindActiveByID(ctx, id)
	if err != nil {
		return domain.LifecycleView{}, perr.WrapIf(err, perr.ErrorCodeDB, "load record")
	}
	ts, okTs, err := s.store.FindTombstoneByID(ctx, id)
	if err != nil {
		return domain.LifecycleView{}, perr.WrapIf(err, perr.ErrorCodeDB, "load tombstone")
	}
	var (
		recP *facility.Record
		tsP  *facility.Tombstone
	)
	if okRec {
		recP = &rec
	}
	if okTs {
		tsP = &ts
	}
	return domain.ViewOf(id, lifecycle.Of(recP, tsP)), nil
}

// Delete removes a facility from both stores. Curated overlay metadata is never
// dropped implicitly, so a facility carrying any is refused with a conflict
func (s *Svc) Delete(ctx context.Context, id facility.ID) error {
	err := s.runner.Run(ctx, func(ctx context.Context) error {
		rec, okRec, err := s.store.FindActiveByID(ctx, id)
		if err != nil {
			return perr.WrapIf(err, perr.ErrorCodeDB, "load record")
		}
		ts, okTs, err := s.store.FindTombstoneByID(ctx, id)
		if err != nil {
			return perr.WrapIf(err, perr.ErrorCodeDB, "load tombstone")
		}
		if !okRec && !okTs {
			return perr.WithField(perr.NotFoundf("facility %s not found", id), "id")
		}
		if (okRec && !rec.Overlay.IsEmpty()) || (okTs && !ts.Overlay.IsEmpty()) {
			return perr.Conflictf("facility %s has curated overlay data", id)
		}
		if okRec {
			if err := s.store.DeleteActive(ctx, id); err != nil {
				return perr.WrapIf(err, perr.ErrorCodeDB, "delete record")
			}
		}
		if okTs {
			if err := s.store.DeleteTombstone(ctx, id); err != nil {
				return perr.WrapIf(err, perr.ErrorCodeDB, "delete tombstone")
			}
		}
		s.log.Info().Str("facility_id", id.String()).Msg("facility deleted")
		return nil
	})
	if errors.Is(err, guardrails.ErrBusy) {
		return ErrDeleteBusy
	}
	return err
}
