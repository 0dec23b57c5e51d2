// Package service runs facility reconciliation cycles and the admin operations around them
package service

import (
	"sync/atomic"
	"time"

	"facilities/internal/core/report"
	"facilities/internal/platform/logger"
	ptime "facilities/internal/platform/time"
	"facilities/internal/services/facilities/domain"
	"facilities/internal/services/facilities/guardrails"
)

// Service is the full facilities surface
type Service interface {
	domain.ReloaderPort
	domain.AdminPort
}

// Config carries the reconciliation knobs
type Config struct {
	// TombstoneAfter is how long a record may stay missing before it is tombstoned
	TombstoneAfter time.Duration
	Workers        int
	Purge          PurgePolicy
	Timeouts       guardrails.Timeouts
}

// Svc implements Service
type Svc struct {
	engine    *Engine
	store     domain.LifecycleStore
	collector domain.Collector
	runner    *guardrails.Runner
	sinks     []domain.ReportSink
	metrics   *Metrics
	clock     ptime.Clock
	cfg       Config
	log       *logger.Logger

	last atomic.Pointer[report.Report]
}

var _ Service = (*Svc)(nil)

// Option customizes a Svc
type Option func(*Svc)

// WithClock pins the clock, mostly for tests
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.clock = c } }

// WithRunner replaces the default in-process runner
func WithRunner(r *guardrails.Runner) Option { return func(s *Svc) { s.runner = r } }

// WithSinks adds report sinks
func WithSinks(sinks ...domain.ReportSink) Option {
	return func(s *Svc) { s.sinks = append(s.sinks, sinks...) }
}

// WithMetrics sets the reload collectors
func WithMetrics(m *Metrics) Option { return func(s *Svc) { s.metrics = m } }

// New constructs the service. collector may be nil, Reload then reports unavailable
func New(st domain.LifecycleStore, collector domain.Collector, cfg Config, opts ...Option) *Svc {
	if st == nil {
		panic("facilities.Service requires a non nil LifecycleStore")
	}
	s := &Svc{
		store:     st,
		collector: collector,
		cfg:       cfg,
		clock:     ptime.System{},
		log:       logger.Named("facilities"),
	}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = guardrails.NewRunner(nil)
	}
	s.engine = NewEngine(st, cfg, s.clock)
	return s
}
