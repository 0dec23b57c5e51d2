// Package store provides a unified interface to optional storage backends
package store

import (
	"context"
	"errors"
	"fmt"

	"facilities/internal/platform/logger"
)

// Store holds whichever backends are configured. Unconfigured ones stay nil
type Store struct {
	Log logger.Logger

	// PG and Lite are alternative lifecycle stores, the module picks one
	PG   TxRunner
	Lite TxRunner
	// CH archives reload reports
	CH Clickhouse
}

// Row is one result row. Scan reports no rows the way the driver does, see perr.IsNoRows
type Row interface {
	Scan(dest ...any) error
}

// Rows is a forward only cursor, Close must be called
type Rows interface {
	Row
	Next() bool
	Err() error
	Close()
}

// CommandTag describes what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos bind to. Placeholders follow the backend dialect
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can scope fn to one transaction.
// fn returning an error rolls back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the append only report archive seam
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open dials every backend enabled in cfg. Seams injected through opts are
// kept as is. On failure whatever was already opened is closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	steps := []struct {
		name string
		on   bool
		open func() error
	}{
		{"pg", cfg.PG.Enabled && s.PG == nil, func() (err error) { s.PG, err = openPG(ctx, cfg, s.Log); return }},
		{"sqlite", cfg.SQLite.Enabled && s.Lite == nil, func() (err error) { s.Lite, err = OpenSQLite(ctx, cfg.SQLite.Path); return }},
		{"ch", cfg.CH.Enabled && s.CH == nil, func() (err error) { s.CH, err = openCH(ctx, cfg); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("open %s: %w", st.name, err)
		}
		s.Log.Debug().Str("backend", st.name).Msg("backend ready")
	}
	return s, nil
}

type seam struct {
	name string
	v    any
}

// seams lists the configured backends in a fixed order
func (s *Store) seams() []seam {
	var out []seam
	if s.PG != nil {
		out = append(out, seam{"pg", s.PG})
	}
	if s.Lite != nil {
		out = append(out, seam{"sqlite", s.Lite})
	}
	if s.CH != nil {
		out = append(out, seam{"ch", s.CH})
	}
	return out
}

// Guard pings every configured seam that can answer
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, sm := range s.seams() {
		if p, ok := sm.v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases every backend that has a Close, nil seams are skipped
func (s *Store) Close(_ context.Context) error {
	var errs []error
	for _, sm := range s.seams() {
		if c, ok := sm.v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
