package store

import (
	"context"
	"fmt"
	"time"

	"facilities/internal/platform/logger"
	chx "facilities/internal/platform/store/ch"
	"facilities/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
)

// openPG dials the pool and retries a ping with backoff until it answers
func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL || cfg.PG.SlowQueryMs > 0 {
		tracer = pg.Tracer(log, cfg.PG.LogSQL)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:             cfg.PG.URL,
		ApplicationName: cfg.AppName,
		MaxConns:        cfg.PG.MaxConns,
		SlowMs:          cfg.PG.SlowQueryMs,
	}, tracer, pg.WithMaxConnIdle(cfg.PG.MaxConnIdle))
	if err != nil {
		return nil, err
	}

	retries := cfg.PG.ConnectRetries
	if retries <= 0 {
		retries = 8
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 150 * time.Millisecond
	eb.MaxInterval = 2 * time.Second
	eb.MaxElapsedTime = 0 // bounded by retries instead
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		// ping the pool directly so boot does not spam the SQL trace
		pingErr := p.Pool.Ping(toCtx)
		if pingErr != nil {
			log.Warn().Err(pingErr).Int("attempt", attempt).Msg("postgres not ready")
		}
		return pingErr
	}, policy)
	if err != nil {
		p.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempt, err)
	}

	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.CH.ClientName,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
