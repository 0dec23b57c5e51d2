package pg

import (
	"context"
	"strings"
	"time"

	"facilities/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one statement round trip as seen by the store adapter
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	// Slow is set when Elapsed crossed the configured threshold
	Slow bool
}

// QueryTracer receives every statement the adapters run
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// TracerFunc adapts a func to QueryTracer
type TracerFunc func(ctx context.Context, ev QueryEvent)

// OnQuery calls f
func (f TracerFunc) OnQuery(ctx context.Context, ev QueryEvent) { f(ctx, ev) }

// Tracer logs failed and slow statements at warn. With verbose set every other
// statement is logged at info as well, regardless of the root level
func Tracer(root logger.Logger, verbose bool) QueryTracer {
	log := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return TracerFunc(func(ctx context.Context, ev QueryEvent) {
		var e *zerolog.Event
		switch {
		case ev.Err != nil || ev.Slow:
			e = log.Warn().Err(ev.Err)
		case verbose:
			e = log.Info()
		default:
			return
		}
		if id := logger.CycleID(ctx); id != "" {
			e = e.Str("cycle_id", id)
		}
		e.Dur("elapsed", ev.Elapsed).
			Bool("slow", ev.Slow).
			Str("sql", compact(ev.SQL)).
			Int("args", len(ev.Args)).
			Msg("pg query")
	})
}

// compact puts multi-line statements on one log line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
