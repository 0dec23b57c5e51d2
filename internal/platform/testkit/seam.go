package testkit

import (
	"sync"
	"testing"
)

// serial guards process wide state: package seams, the module registry and env vars
var serial sync.Mutex

// Swap replaces *target for the rest of the test
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds the process wide lock until the test ends.
// Call it before Swap or module.Register in any test that may share state
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
