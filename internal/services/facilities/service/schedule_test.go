package service

import (
	"context"
	"testing"
	"time"

	"facilities/internal/services/facilities/repo"
)

func TestEveryRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := newSvc(repo.NewMemory(), snapshot{valid("vha_1")}, &clock{now: t0})

	done := make(chan struct{})
	go func() { svc.Every(ctx, 5*time.Millisecond); close(done) }()

	deadline := time.After(2 * time.Second)
	for {
		if _, ok := svc.LastReport(); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("no scheduled reload ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestEveryDisabled(t *testing.T) {
	svc := newSvc(repo.NewMemory(), snapshot{}, &clock{now: t0})
	svc.Every(context.Background(), 0) // returns immediately
	if _, ok := svc.LastReport(); ok {
		t.Fatal("disabled schedule must not run")
	}
}
