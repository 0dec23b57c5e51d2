// Package guardrails holds the single runner guard and cycle budgets for reloads
package guardrails

import (
	"context"
	"sync"

	"facilities/internal/modkit/repokit"
	perr "facilities/internal/platform/errors"
)

// ErrBusy signals another reload owns the lifecycle store right now
var ErrBusy = perr.New(perr.ErrorCodeConflict, "reload already in progress")

// ReloadLockKey is the advisory lock key shared by every facilities process
const ReloadLockKey int64 = 0x66616331

// Lease runs do while holding a cross process claim, or returns ErrBusy
type Lease func(ctx context.Context, do func(context.Context) error) error

// Runner admits one reconciliation at a time. The in-process mutex covers concurrent
// triggers in one binary; the optional lease covers several replicas on one database
type Runner struct {
	mu    sync.Mutex
	lease Lease
}

// NewRunner builds a Runner; lease may be nil
func NewRunner(lease Lease) *Runner { return &Runner{lease: lease} }

// Run executes do exclusively or fails fast with ErrBusy. It never queues
func (r *Runner) Run(ctx context.Context, do func(context.Context) error) error {
	if !r.mu.TryLock() {
		return ErrBusy
	}
	defer r.mu.Unlock()
	if r.lease == nil {
		return do(ctx)
	}
	return r.lease(ctx, do)
}

// MakeAdvisoryLease claims pg_try_advisory_xact_lock(key) and runs do while the tx stays open.
// The lock is released when the tx ends, including on crash of the holder
func MakeAdvisoryLease(db repokit.TxRunner, key int64) Lease {
	return func(ctx context.Context, do func(context.Context) error) error {
		return db.Tx(ctx, func(q repokit.Queryer) error {
			var claimed bool
			if err := q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1)`, key).Scan(&claimed); err != nil {
				return perr.FromSQL(err, "claim reload lease")
			}
			if !claimed {
				return ErrBusy
			}
			return do(ctx)
		})
	}
}

// HoldIdle is a begin hook for lease transactions. The lease tx sits idle while the
// cycle runs on other connections, so a server side idle timeout must not end it early
func HoldIdle(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, `SET LOCAL idle_in_transaction_session_timeout = 0`)
	return err
}
