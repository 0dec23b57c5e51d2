package module

import (
	"time"

	"facilities/internal/platform/config"
	"facilities/internal/services/facilities/domain"
)

// Collector sources
const (
	CollectorHTTP = "http"
	CollectorFile = "file"
	CollectorNone = "none"
)

// Options controls the facilities module. Values may also be read from env
type Options struct {
	TombstoneAfter     time.Duration
	Workers            int
	TombstoneRetention time.Duration // 0 keeps tombstones forever

	CycleTimeout   time.Duration
	CollectTimeout time.Duration

	// Leases adds a postgres advisory lock so only one replica reconciles at a time
	Leases bool

	// ReloadInterval runs scheduled reloads when > 0
	ReloadInterval time.Duration

	// AdminTokens are "actor:token" pairs guarding the admin routes
	AdminTokens []string

	CollectorKind string
	URL           string
	Token         string
	File          string

	// Collector overrides CollectorKind when set (tests, cli)
	Collector domain.Collector
}

// FromConfig reads options using the FACILITIES_ prefix
func FromConfig(cfg config.Conf) Options {
	fc := cfg.Prefix("FACILITIES_")
	return Options{
		TombstoneAfter:     fc.MayDuration("TOMBSTONE_AFTER", 72*time.Hour),
		Workers:            fc.MayInt("WORKERS", 8),
		TombstoneRetention: fc.MayDuration("TOMBSTONE_RETENTION", 0),
		CycleTimeout:       fc.MayDuration("CYCLE_TIMEOUT", 15*time.Minute),
		CollectTimeout:     fc.MayDuration("COLLECT_TIMEOUT", 5*time.Minute),
		Leases:             fc.MayBool("LEASES", false),
		ReloadInterval:     fc.MayDuration("RELOAD_INTERVAL", 0),
		AdminTokens:        fc.MayCSV("ADMIN_TOKENS", nil),
		CollectorKind:      fc.MayEnum("COLLECTOR", CollectorNone, CollectorHTTP, CollectorFile, CollectorNone),
		URL:                fc.MayString("URL", ""),
		Token:              fc.MayString("TOKEN", ""),
		File:               fc.MayString("FILE", ""),
	}
}

// merge applies non zero overrides on top of o
func (o Options) merge(over Options) Options {
	if over.TombstoneAfter != 0 {
		o.TombstoneAfter = over.TombstoneAfter
	}
	if over.Workers != 0 {
		o.Workers = over.Workers
	}
	if over.TombstoneRetention != 0 {
		o.TombstoneRetention = over.TombstoneRetention
	}
	if over.CycleTimeout != 0 {
		o.CycleTimeout = over.CycleTimeout
	}
	if over.CollectTimeout != 0 {
		o.CollectTimeout = over.CollectTimeout
	}
	if over.Leases {
		o.Leases = true
	}
	if over.ReloadInterval != 0 {
		o.ReloadInterval = over.ReloadInterval
	}
	if len(over.AdminTokens) > 0 {
		o.AdminTokens = over.AdminTokens
	}
	if over.CollectorKind != "" {
		o.CollectorKind = over.CollectorKind
	}
	if over.URL != "" {
		o.URL = over.URL
	}
	if over.Token != "" {
		o.Token = over.Token
	}
	if over.File != "" {
		o.File = over.File
	}
	if over.Collector != nil {
		o.Collector = over.Collector
	}
	return o
}
