// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "facilities/internal/modkit"
	"facilities/internal/modkit/httpkit"
	"facilities/internal/platform/store"
	str "facilities/internal/platform/strings"

	metahttp "facilities/internal/services/api/meta/http"
)

// Module serves health, readiness and build info
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New constructs a meta module for the named binary
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		built: b,
		deps: metahttp.Deps{
			ServiceName: service,
			StartedAt:   time.Now(),
			Probes: []metahttp.Probe{
				probe("pg", deps.PG),
				probe("sqlite", deps.Lite),
				probe("ch", deps.CH),
			},
		},
	}
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements module.Module
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports implements module.Module. meta exports nothing
func (m *Module) Ports() any { return nil }

// probe reports skipped for seams that are unset or cannot ping
func probe(name string, seam any) metahttp.Probe {
	p := metahttp.Probe{Name: name}
	if pg, ok := seam.(store.Pinger); ok {
		p.Ping = pg.Ping
	}
	return p
}
