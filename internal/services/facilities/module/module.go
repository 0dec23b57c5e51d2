// Package module wires the facilities service into the API using modkit
package module

import (
	"context"

	"golang.org/x/text/language"

	"facilities/internal/adapters/collector/file"
	"facilities/internal/adapters/collector/httpjson"
	modkit "facilities/internal/modkit"
	"facilities/internal/modkit/httpkit"
	"facilities/internal/modkit/repokit"
	"facilities/internal/modkit/swaggerkit"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/net/middleware"
	str "facilities/internal/platform/strings"
	"facilities/internal/services/facilities/domain"
	"facilities/internal/services/facilities/guardrails"
	facilitieshttp "facilities/internal/services/facilities/http"
	"facilities/internal/services/facilities/repo"
	"facilities/internal/services/facilities/service"
)

// Module implements the facilities module
type Module struct {
	built modkit.Built
	deps  modkit.Deps
	opts  Options
	ports Ports

	svc     *service.Svc
	auth    middleware.AuthPort
	store   repo.Repo
	dialect repo.Dialect
	chSink  *service.ClickHouseSink
}

// New constructs the facilities module. Env options come first, overrides win when non zero
func New(deps modkit.Deps, overrides Options, mods ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("facilities"), modkit.WithPrefix("/facilities")}, mods...)...)
	o := FromConfig(deps.Cfg).merge(overrides)
	log := logger.Named("facilities")

	st, dialect := storeFor(deps)
	if dialect == "" {
		log.Warn().Msg("no sql backend configured; lifecycle state lives in memory only")
	}

	var runner *guardrails.Runner
	if o.Leases && deps.PG != nil {
		runner = guardrails.NewRunner(guardrails.MakeAdvisoryLease(
			repokit.WithBeginHooks(deps.PG, guardrails.HoldIdle), guardrails.ReloadLockKey))
	} else {
		runner = guardrails.NewRunner(nil)
	}

	sinks := []domain.ReportSink{service.LogSink{Lang: language.English}}
	var chSink *service.ClickHouseSink
	if deps.CH != nil {
		chSink = &service.ClickHouseSink{CH: deps.CH}
		sinks = append(sinks, *chSink)
	}

	svcOpts := []service.Option{service.WithRunner(runner), service.WithSinks(sinks...)}
	if mx, err := service.NewMetrics(deps.Registerer()); err != nil {
		log.Warn().Err(err).Msg("reload metrics disabled")
	} else {
		svcOpts = append(svcOpts, service.WithMetrics(mx))
	}

	svc := service.New(st, collectorFor(o), service.Config{
		TombstoneAfter: o.TombstoneAfter,
		Workers:        o.Workers,
		Purge:          service.PolicyFor(o.TombstoneRetention),
		Timeouts:       guardrails.Timeouts{Cycle: o.CycleTimeout, Collect: o.CollectTimeout},
	}, svcOpts...)

	m := &Module{
		built:   b,
		deps:    deps,
		opts:    o,
		ports:   Ports{Reloader: svc, Admin: svc},
		svc:     svc,
		auth:    httpkit.StaticTokens(o.AdminTokens),
		store:   st,
		dialect: dialect,
		chSink:  chSink,
	}
	if m.auth == nil {
		log.Warn().Msg("FACILITIES_ADMIN_TOKENS empty; admin routes are open")
	}
	if b.SwaggerOn {
		swaggerkit.Register(bearerScheme)
	}
	return m
}

// storeFor binds the repo to the preferred sql seam, falling back to memory
func storeFor(deps modkit.Deps) (repo.Repo, repo.Dialect) {
	q, name := deps.SQL()
	if q == nil {
		return repo.NewMemory(), ""
	}
	d := repo.Dialect(name)
	b, err := repo.Binder(d)
	if err != nil {
		panic(err)
	}
	return repokit.MustBind(b, q), d
}

// collectorFor picks the upstream source named by the options
func collectorFor(o Options) domain.Collector {
	if o.Collector != nil {
		return o.Collector
	}
	switch o.CollectorKind {
	case CollectorHTTP:
		return httpjson.New(httpjson.Options{URL: o.URL, Token: o.Token, Timeout: o.CollectTimeout})
	case CollectorFile:
		return file.New(o.File)
	default:
		return nil
	}
}

// bearerScheme documents the admin token on every facilities route
func bearerScheme(spec map[string]any) {
	comps, _ := spec["components"].(map[string]any)
	if comps == nil {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemes, _ := comps["securitySchemes"].(map[string]any)
	if schemes == nil {
		schemes = map[string]any{}
		comps["securitySchemes"] = schemes
	}
	schemes["BearerAuth"] = map[string]any{"type": "http", "scheme": "bearer"}
}

// Migrate creates the lifecycle tables and the ClickHouse report table where configured
func (m *Module) Migrate(ctx context.Context) error {
	if q, _ := m.deps.SQL(); q != nil {
		if err := repo.Migrate(ctx, q, m.dialect); err != nil {
			return err
		}
	}
	if m.chSink != nil {
		return m.chSink.EnsureTable(ctx)
	}
	return nil
}

// Run blocks running scheduled reloads when an interval is configured
func (m *Module) Run(ctx context.Context) {
	if m.opts.ReloadInterval <= 0 {
		return
	}
	m.svc.Every(ctx, m.opts.ReloadInterval)
}

// MountRoutes mounts the admin routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { facilitieshttp.Register(rr, m.svc, m.auth) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }
