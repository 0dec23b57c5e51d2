package service

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"

	"facilities/internal/core/report"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/store"
)

// LogSink writes a one line summary of every report
type LogSink struct {
	Lang language.Tag
}

// Record implements domain.ReportSink
func (s LogSink) Record(ctx context.Context, r report.Report) error {
	c := r.Counts()
	ev := logger.C(ctx).Info().Str("kind", string(r.Kind)).Int("problems", len(r.Problems))
	for o, n := range c {
		ev = ev.Int(string(o), n)
	}
	ev.Msg(r.Summary(s.Lang))
	return nil
}

// ReportsTable is the ClickHouse table holding report history
const ReportsTable = "reload_reports"

// reportsDDL mirrors the row layout written by ClickHouseSink.Record
const reportsDDL = `CREATE TABLE IF NOT EXISTS %s (
	cycle_id     String,
	kind         LowCardinality(String),
	started_at   DateTime64(3, 'UTC'),
	completed_at DateTime64(3, 'UTC'),
	created      UInt32,
	updated      UInt32,
	missing      UInt32,
	removed      UInt32,
	revived      UInt32,
	purged       UInt32,
	problems     UInt32,
	report       String
) ENGINE = MergeTree
ORDER BY (kind, started_at)`

// ClickHouseSink archives reports as one row each
type ClickHouseSink struct {
	CH    store.Clickhouse
	Table string
}

func (s ClickHouseSink) table() string {
	if s.Table == "" {
		return ReportsTable
	}
	return s.Table
}

// EnsureTable creates the reports table when missing
func (s ClickHouseSink) EnsureTable(ctx context.Context) error {
	if s.CH == nil {
		return nil
	}
	if err := s.CH.Exec(ctx, fmt.Sprintf(reportsDDL, s.table())); err != nil {
		return fmt.Errorf("create %s: %w", s.table(), err)
	}
	return nil
}

// Record implements domain.ReportSink
func (s ClickHouseSink) Record(ctx context.Context, r report.Report) error {
	if s.CH == nil {
		return nil
	}
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	row := []any{
		r.CycleID,
		string(r.Kind),
		r.Timing.CollectionStarted,
		r.Timing.ReconciliationCompleted,
		uint32(len(r.Created)),
		uint32(len(r.Updated)),
		uint32(len(r.Missing)),
		uint32(len(r.Removed)),
		uint32(len(r.Revived)),
		uint32(len(r.Purged)),
		uint32(len(r.Problems)),
		string(body),
	}
	return s.CH.Insert(ctx, s.table(), [][]any{row})
}
