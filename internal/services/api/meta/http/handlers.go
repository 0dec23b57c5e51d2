// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"facilities/internal/core/version"
	"facilities/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// readyTimeout bounds one readiness sweep across every probe
const readyTimeout = 2 * time.Second

// Probe is one named dependency check. A nil Ping reports skipped
type Probe struct {
	Name string
	Ping func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Probes      []Probe
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: func() time.Time { return time.Now().UTC() }}

	httpkit.GetJSON(r, "/health", h.health)
	httpkit.GetJSON(r, "/ready", h.ready)
	httpkit.GetJSON(r, "/version", h.version)
	httpkit.GetJSON(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"facilities-api"`
	Started string `json:"started"  example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-01T13:05:00Z"`
}

// Check states reported per probe
const (
	CheckOK      = "ok"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
)

// ReadyCheck is the outcome of one probe
type ReadyCheck struct {
	Name    string `json:"name"   example:"pg"`
	Status  string `json:"status" example:"ok" enums:"ok,fail,skipped"`
	Error   string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
	Latency int64  `json:"latency_ms" example:"3"`
}

// ReadyResponse is ok when every configured probe answered, fail when any
// did not, and degraded when nothing is configured at all
type ReadyResponse struct {
	Status string       `json:"status" example:"ok" enums:"ok,degraded,fail"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string `json:"name"    example:"facilities-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(h.now()),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(h.deps.Probes))
	var g errgroup.Group
	for i, p := range h.deps.Probes {
		i, p := i, p
		g.Go(func() error {
			checks[i] = run(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return ReadyResponse{Status: overall(checks), Checks: checks, Now: stamp(h.now())}, nil
}

func run(ctx context.Context, p Probe) ReadyCheck {
	c := ReadyCheck{Name: p.Name, Status: CheckSkipped}
	if p.Ping == nil {
		return c
	}
	start := time.Now()
	err := p.Ping(ctx)
	c.Latency = time.Since(start).Milliseconds()
	if err != nil {
		c.Status, c.Error = CheckFail, err.Error()
		return c
	}
	c.Status = CheckOK
	return c
}

func overall(checks []ReadyCheck) string {
	status := "degraded"
	for _, c := range checks {
		switch c.Status {
		case CheckFail:
			return "fail"
		case CheckOK:
			status = "ok"
		}
	}
	return status
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.For(h.deps.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
