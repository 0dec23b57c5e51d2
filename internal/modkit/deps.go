// Package modkit provides module wiring and core deps
package modkit

import (
	"facilities/internal/modkit/repokit"
	"facilities/internal/platform/config"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/store"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is the postgres seam, nil when not configured
	PG repokit.TxRunner
	// Lite is the embedded sqlite seam, nil when not configured
	Lite repokit.TxRunner
	// CH is the clickhouse seam, nil when not configured
	CH store.Clickhouse

	// Metrics is where modules register collectors; nil means prometheus.DefaultRegisterer
	Metrics prometheus.Registerer
}

// FromStore copies the opened backends of st onto a Deps value
func FromStore(cfg config.Conf, log logger.Logger, st *store.Store) Deps {
	d := Deps{Cfg: cfg, Log: log}
	if st != nil {
		d.PG, d.Lite, d.CH = st.PG, st.Lite, st.CH
	}
	return d
}

// Registerer returns the metrics registerer, falling back to the default one
func (d Deps) Registerer() prometheus.Registerer {
	if d.Metrics != nil {
		return d.Metrics
	}
	return prometheus.DefaultRegisterer
}

// SQL returns the preferred sql seam (postgres over sqlite) and its dialect name
func (d Deps) SQL() (repokit.TxRunner, string) {
	switch {
	case d.PG != nil:
		return d.PG, "postgres"
	case d.Lite != nil:
		return d.Lite, "sqlite"
	default:
		return nil, ""
	}
}
