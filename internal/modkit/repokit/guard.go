package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder checks every configured backend, *store.Store mostly
type Guarder interface {
	Guard(context.Context) error
}

// DefaultGuardTimeout bounds MustGuard when the caller passes no timeout
const DefaultGuardTimeout = 5 * time.Second

// MustGuard panics when a backend does not answer within timeout. Meant for process startup
func MustGuard(ctx context.Context, g Guarder, timeout time.Duration) {
	if g == nil {
		panic("repokit: nil guarder")
	}
	if timeout <= 0 {
		timeout = DefaultGuardTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
