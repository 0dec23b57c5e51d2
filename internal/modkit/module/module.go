// Package module defines the minimal contract for a modkit module
package module

import (
	"context"

	phttp "facilities/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// keep this sibling to avoid import knots when a module also exports its own ports type
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Migrator is implemented by modules that own tables
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Runner is implemented by modules with a background loop. Run blocks until ctx is done
type Runner interface {
	Run(ctx context.Context)
}
