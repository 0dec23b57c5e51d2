package store

import (
	"time"

	"facilities/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG     PGConfig
	CH     CHConfig
	SQLite SQLiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 8 with exponential backoff
	PingTimeout    time.Duration // default 3s per attempt
	MaxConnIdle    time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// SQLiteConfig configures the embedded sqlite database used for local runs
type SQLiteConfig struct {
	Enabled bool
	Path    string
}

// FromEnv reads SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_* and SERVICE_SQLITE_* from root.
// A backend is enabled when its DBURL (or PATH) is set
func FromEnv(root config.Conf, app, role string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")
	lite := root.Prefix("SERVICE_SQLITE_")

	pgURL := pg.MayString("DBURL", "")
	chURL := ch.MayString("DBURL", "")
	litePath := lite.MayString("PATH", "")

	return Config{
		AppName: app,
		PG: PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 8),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
			MaxConnIdle:    pg.MayDuration("MAX_CONN_IDLE", 5*time.Minute),
		},
		CH: CHConfig{
			Enabled:    chURL != "",
			URL:        chURL,
			ClientName: app,
			ClientTag:  role,
		},
		SQLite: SQLiteConfig{
			Enabled: litePath != "",
			Path:    litePath,
		},
	}
}
