// Package domain declares the facilities service ports
package domain

import (
	"context"

	"facilities/internal/core/facility"
	"facilities/internal/core/report"
)

// Collector fetches one full upstream snapshot. An error fails the whole cycle
type Collector interface {
	Collect(ctx context.Context) ([]facility.Payload, error)
}

// CollectorFunc adapts a function to Collector
type CollectorFunc func(ctx context.Context) ([]facility.Payload, error)

// Collect calls f
func (f CollectorFunc) Collect(ctx context.Context) ([]facility.Payload, error) { return f(ctx) }

// ActiveStore persists records that are present upstream or missing within the grace period
type ActiveStore interface {
	// FindAllActiveIDs is the id only scan used once per cycle
	FindAllActiveIDs(ctx context.Context) ([]facility.ID, error)
	FindActiveByID(ctx context.Context, id facility.ID) (facility.Record, bool, error)
	SaveActive(ctx context.Context, r facility.Record) error
	DeleteActive(ctx context.Context, id facility.ID) error
}

// TombstoneStore persists records removed after their grace period
type TombstoneStore interface {
	FindAllTombstoneIDs(ctx context.Context) ([]facility.ID, error)
	FindTombstoneByID(ctx context.Context, id facility.ID) (facility.Tombstone, bool, error)
	SaveTombstone(ctx context.Context, t facility.Tombstone) error
	DeleteTombstone(ctx context.Context, id facility.ID) error
}

// LifecycleStore is the durable home of both stores. Deletes of unknown ids are not errors
type LifecycleStore interface {
	ActiveStore
	TombstoneStore
}

// ReloaderPort runs one reconciliation cycle against a fresh snapshot
type ReloaderPort interface {
	Reload(ctx context.Context) (report.Report, error)
}

// AdminPort is the operator surface around the lifecycle stores
type AdminPort interface {
	// Upload reconciles the given payloads without a missing sweep
	Upload(ctx context.Context, payloads []facility.Payload) (report.Report, error)
	// Delete removes a facility from both stores; refused while it carries an overlay
	Delete(ctx context.Context, id facility.ID) error
	Lookup(ctx context.Context, id facility.ID) (LifecycleView, error)
	// LastReport is the most recent report produced by this process
	LastReport() (report.Report, bool)
}

// ReportSink archives finished reports. Failures are logged by the caller and never fail a cycle
type ReportSink interface {
	Record(ctx context.Context, r report.Report) error
}
