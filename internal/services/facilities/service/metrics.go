package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"facilities/internal/core/report"
)

// Metrics are the reload collectors
type Metrics struct {
	outcomes *prometheus.CounterVec
	problems prometheus.Counter
	cycles   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers the collectors on reg, reusing ones already registered
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.outcomes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facilities_reload_outcomes_total",
		Help: "Facilities per lifecycle outcome across reconciliation cycles",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if m.problems, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "facilities_reload_problems_total",
		Help: "Problems reported by reconciliation cycles",
	})); err != nil {
		return nil, err
	}
	if m.cycles, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facilities_reload_cycles_total",
		Help: "Reconciliation cycles by kind and status",
	}, []string{"kind", "status"})); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "facilities_reload_duration_seconds",
		Help:    "Wall time from collection start to reconciliation end",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})); err != nil {
		return nil, err
	}
	return &m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// observe records a finished cycle; nil receivers are no-ops
func (m *Metrics) observe(r report.Report) {
	if m == nil {
		return
	}
	for o, n := range r.Counts() {
		m.outcomes.WithLabelValues(string(o)).Add(float64(n))
	}
	m.problems.Add(float64(len(r.Problems)))
	m.cycles.WithLabelValues(string(r.Kind), "ok").Inc()
	if d := r.Duration(); d > 0 {
		m.duration.Observe(d.Seconds())
	}
}

// failed counts a cycle that produced no report
func (m *Metrics) failed(kind report.Kind) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(string(kind), "failed").Inc()
}
