package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"facilities/internal/modkit"
	"facilities/internal/modkit/module"
	"facilities/internal/platform/config"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/store"
	"facilities/internal/services/facilities/domain"
	facilitiesmod "facilities/internal/services/facilities/module"
)

// env is an opened store plus the facilities ports bound to it
type env struct {
	st     *store.Store
	reload domain.ReloaderPort
	admin  domain.AdminPort
}

// open connects the configured backends, migrates them and builds the module
func open(ctx context.Context, opts *RootOptions, over facilitiesmod.Options) (*env, error) {
	root := config.New()
	cfg := storeConfig(root, opts)

	log := logger.Named("facilitiesctl")
	st, err := store.Open(ctx, cfg, store.WithLogger(*log))
	if err != nil {
		return nil, err
	}

	deps := modkit.FromStore(root, *log, st)
	// one shot process, nothing scrapes it
	deps.Metrics = prometheus.NewRegistry()

	m := facilitiesmod.New(deps, over)
	if err := m.Migrate(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	return &env{
		st:     st,
		reload: module.MustPortsOf[domain.ReloaderPort](m),
		admin:  module.MustPortsOf[domain.AdminPort](m),
	}, nil
}

// DefaultSQLitePath is where state lives when neither flags nor env name a backend.
// Without it every run would start from an empty in-memory store
const DefaultSQLitePath = "facilities.db"

// storeConfig layers the backend flags over the SERVICE_* env
func storeConfig(root config.Conf, opts *RootOptions) store.Config {
	cfg := store.FromEnv(root, "facilities", "cli")
	if opts.PGURL != "" {
		cfg.PG.Enabled, cfg.PG.URL = true, opts.PGURL
	}
	if opts.SQLite != "" {
		cfg.SQLite.Enabled, cfg.SQLite.Path = true, opts.SQLite
	}
	if !cfg.PG.Enabled && !cfg.SQLite.Enabled {
		cfg.SQLite.Enabled, cfg.SQLite.Path = true, DefaultSQLitePath
	}
	return cfg
}

func (e *env) close(ctx context.Context) {
	if err := e.st.Close(ctx); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close store")
	}
}
