// Package api provides the HTTP API for the application
package api

import (
	"context"
	"sync"

	"facilities/internal/platform/config"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/metrics"
	phttp "facilities/internal/platform/net/http"
	"facilities/internal/platform/net/middleware"
	"facilities/internal/platform/store"

	"facilities/internal/modkit"
	"facilities/internal/modkit/httpkit"
	"facilities/internal/modkit/module"
	"facilities/internal/modkit/swaggerkit"

	metamod "facilities/internal/services/api/meta/module"
	facilitiesmod "facilities/internal/services/facilities/module"
)

// ServiceName is reported by the meta endpoints
const ServiceName = "facilities-api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Registry
	EnableSwagger  bool
	EnableProfiler bool

	// AdminInflight caps concurrent facilities admin requests, 0 leaves them unbounded.
	// Uploads hold whole snapshots in memory
	AdminInflight int

	// Facilities overrides the env derived facilities options
	Facilities facilitiesmod.Options
}

// Mounted is the set of modules behind the router
type Mounted struct {
	mods []module.Module
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *Mounted {
	deps := modkit.FromStore(opt.Config, *logger.Get(), opt.Store)
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Metrics != nil {
		deps.Metrics = opt.Metrics
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	facOpts := []modkit.Option{modkit.WithSwagger(opt.EnableSwagger)}
	if opt.AdminInflight > 0 {
		facOpts = append(facOpts, modkit.WithMiddlewares(middleware.Throttle(opt.AdminInflight)))
	}
	facilities := facilitiesmod.New(deps, opt.Facilities, facOpts...)
	mods := []module.Module{
		metamod.New(deps, ServiceName),
		facilities,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	deps.Log.Info().Strs("modules", module.Names()).Msg("api mounted")
	return &Mounted{mods: mods}
}

// Migrate runs every module migration in mount order
func (m *Mounted) Migrate(ctx context.Context) error {
	for _, mod := range m.mods {
		if mg, ok := mod.(module.Migrator); ok {
			if err := mg.Migrate(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Start launches every module background loop and returns a wait func
func (m *Mounted) Start(ctx context.Context) (wait func()) {
	var wg sync.WaitGroup
	for _, mod := range m.mods {
		if rn, ok := mod.(module.Runner); ok {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rn.Run(ctx)
			}()
		}
	}
	return wg.Wait
}
