package guardrails

import (
	"context"
	"time"
)

// Timeouts is the budget bundle for one cycle. Zero values mean no extra limit at that level
type Timeouts struct {
	// Cycle bounds collection plus reconciliation
	Cycle time.Duration

	// Collect caps the upstream fetch
	Collect time.Duration
}

// WithCycle returns a context limited by the cycle budget without extending any parent deadline
func WithCycle(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Cycle)
}

// ForCollect returns a sub context for the fetch bounded by Collect and any remaining parent budget
func ForCollect(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Collect)
}

// Remaining returns the time until the deadline on ctx or zero when none is set or already expired
func Remaining(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			return d
		}
	}
	return 0
}

// withChildTimeout picks the tighter of d and the parent remainder. Never extends the parent
func withChildTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	if rem := Remaining(parent); rem > 0 && rem < d {
		return context.WithTimeout(parent, rem)
	}
	return context.WithTimeout(parent, d)
}
