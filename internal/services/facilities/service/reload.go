package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"facilities/internal/core/facility"
	"facilities/internal/core/report"
	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/logger"
	"facilities/internal/services/facilities/guardrails"
)

// Reload fetches a full snapshot and reconciles it. A fetch failure yields no report
func (s *Svc) Reload(ctx context.Context) (report.Report, error) {
	if s.collector == nil {
		return report.Report{}, perr.Unavailablef("no upstream collector configured")
	}
	return s.cycle(ctx, report.KindReload, true, func(ctx context.Context) ([]facility.Payload, error) {
		cctx, cancel := guardrails.ForCollect(ctx, s.cfg.Timeouts)
		defer cancel()
		payloads, err := s.collector.Collect(cctx)
		if err == nil {
			return payloads, nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, perr.Wrap(err, perr.ErrorCodeTimeout, "collect snapshot")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "collect snapshot")
	})
}

// Upload reconciles an operator supplied batch through the same create, update and
// revive paths. It never sweeps, so facilities left out of the batch are untouched
func (s *Svc) Upload(ctx context.Context, payloads []facility.Payload) (report.Report, error) {
	return s.cycle(ctx, report.KindUpload, false, func(context.Context) ([]facility.Payload, error) {
		return payloads, nil
	})
}

type collectFn func(ctx context.Context) ([]facility.Payload, error)

// cycle runs one guarded reconciliation and publishes its report
func (s *Svc) cycle(ctx context.Context, kind report.Kind, sweep bool, collect collectFn) (report.Report, error) {
	var out report.Report
	err := s.runner.Run(ctx, func(ctx context.Context) error {
		id := uuid.NewString()
		ctx = logger.WithCycle(ctx, id)
		ctx, cancel := guardrails.WithCycle(ctx, s.cfg.Timeouts)
		defer cancel()
		log := logger.C(ctx)

		b := report.NewBuilder(id, kind)
		b.CollectionStarted(s.clock.Now())
		log.Info().Str("kind", string(kind)).Msg("cycle started")

		payloads, err := collect(ctx)
		if err != nil {
			log.Error().Err(err).Msg("collection failed")
			return err
		}
		b.CollectionCompleted(s.clock.Now())

		if err := s.engine.Reconcile(ctx, payloads, b, sweep); err != nil {
			log.Error().Err(err).Int("payloads", len(payloads)).Msg("reconciliation failed")
			return err
		}
		b.ReconciliationCompleted(s.clock.Now())

		out = b.Build()
		s.publish(ctx, out)
		return nil
	})
	if err != nil {
		s.metrics.failed(kind)
		return report.Report{}, err
	}
	return out, nil
}

// publish keeps the report as the latest one and hands it to metrics and sinks
func (s *Svc) publish(ctx context.Context, r report.Report) {
	s.last.Store(&r)
	s.metrics.observe(r)
	for _, sink := range s.sinks {
		if err := sink.Record(ctx, r); err != nil {
			logger.C(ctx).Warn().Err(err).Msgf("report sink %T failed", sink)
		}
	}
}

// LastReport returns the most recent report produced by this process
func (s *Svc) LastReport() (report.Report, bool) {
	r := s.last.Load()
	if r == nil {
		return report.Report{}, false
	}
	return *r, true
}
