package store

import (
	"context"
	"errors"

	"facilities/internal/platform/store/ch"
)

// chAdapter exposes an opened *ch.CH as the Clickhouse seam
type chAdapter struct{ c *ch.CH }

func newCHAdapter(c *ch.CH) Clickhouse { return chAdapter{c: c} }

func (a chAdapter) Insert(ctx context.Context, table string, rows [][]any) error {
	return a.c.Insert(ctx, table, rows)
}

func (a chAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return a.c.Exec(ctx, sql, args...)
}

func (a chAdapter) Ping(ctx context.Context) error {
	if a.c == nil {
		return errors.New("ch: not open")
	}
	return a.c.Ping(ctx)
}

func (a chAdapter) Close() error { return a.c.Close() }
