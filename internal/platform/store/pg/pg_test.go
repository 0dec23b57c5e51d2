package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"facilities/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	in := "SELECT id\n\tFROM facilities_active\n   WHERE id = $1  "
	if got := compact(in); got != "SELECT id FROM facilities_active WHERE id = $1" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf), true)
	ctx := logger.WithCycle(context.Background(), "c-1")

	tr.OnQuery(ctx, QueryEvent{SQL: "SELECT 1", Elapsed: 1500 * time.Microsecond})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 2", Err: errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"info"`) || !strings.Contains(lines[0], `"cycle_id":"c-1"`) {
		t.Fatalf("first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"error":"boom"`) {
		t.Fatalf("second line: %s", lines[1])
	}
}

func TestQuietTracerOnlyWarns(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf), false)
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1"})
	if buf.Len() != 0 {
		t.Fatalf("fast query logged: %s", buf.String())
	}
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT pg_sleep(1)", Elapsed: time.Second, Slow: true})
	if !strings.Contains(buf.String(), `"slow":true`) {
		t.Fatalf("slow query not logged: %s", buf.String())
	}
}

func TestOpenRejectsBadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://nope"}, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpenAppliesConfig(t *testing.T) {
	var seen *pgxpool.Config
	orig := newPool
	newPool = func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return nil, errors.New("no server")
	}
	t.Cleanup(func() { newPool = orig })

	_, err := Open(context.Background(), Config{
		URL:             "postgres://u:p@localhost:5432/facilities",
		ApplicationName: "facilities-api",
		MaxConns:        3,
	}, nil, WithMaxConnIdle(time.Minute))
	if err == nil || seen == nil {
		t.Fatalf("expected pool seam to be hit, err=%v", err)
	}
	if seen.MaxConns != 3 || seen.MaxConnIdleTime != time.Minute {
		t.Fatalf("pool config %d %v", seen.MaxConns, seen.MaxConnIdleTime)
	}
	if seen.ConnConfig.RuntimeParams["application_name"] != "facilities-api" {
		t.Fatalf("application_name = %q", seen.ConnConfig.RuntimeParams["application_name"])
	}
}
