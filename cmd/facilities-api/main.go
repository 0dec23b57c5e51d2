// @title         Facilities API
// @version       1.0
// @description   Facility reconciliation and lifecycle engine
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"

	"facilities/internal/modkit/repokit"
	"facilities/internal/platform/config"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/metrics"
	phttp "facilities/internal/platform/net/http"
	"facilities/internal/platform/store"

	"facilities/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// backends come from SERVICE_PGSQL_*, SERVICE_SQLITE_* and SERVICE_CLICKHOUSE_*
	st, err := store.Open(ctx, store.FromEnv(root, "facilities", "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st, apiCfg.MayDuration("GUARD_TIMEOUT", 0))

	// http server (reads CORE_API_PORT etc)
	srv := phttp.NewServer(apiCfg)

	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Metrics:        metrics.New(),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			AdminInflight:  apiCfg.MayInt("ADMIN_INFLIGHT", 4),
		},
	)
	if err := mounted.Migrate(ctx); err != nil {
		l.Panic().Err(err).Msg("migrate failed")
	}

	// scheduled reloads when FACILITIES_RELOAD_INTERVAL is set
	wait := mounted.Start(ctx)

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		stop()
	}
	wait()
}
