package net

import (
	"context"
	"net/http"
	"testing"

	perr "facilities/internal/platform/errors"
)

func TestContextValues(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-7")
	ctx = WithActor(ctx, "ops")
	if RequestID(ctx) != "req-7" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	if Actor(ctx) != "ops" {
		t.Fatalf("Actor = %q", Actor(ctx))
	}
	empty := context.Background()
	if WithRequest(empty, "") != empty || WithActor(empty, "") != empty {
		t.Fatal("empty values should not wrap the context")
	}
	if RequestID(empty) != "" || Actor(empty) != "" {
		t.Fatal("expected empty values on bare context")
	}
}

func TestErrorEnvelope(t *testing.T) {
	status, w := Error(perr.WithField(perr.Conflictf("reload already in progress"), "cycle"), "r1")
	if status != http.StatusConflict || w.StatusCode != status {
		t.Fatalf("status = %d / %d", status, w.StatusCode)
	}
	if w.Code != perr.ErrorCodeConflict || w.Error != "reload already in progress" || w.Field != "cycle" {
		t.Fatalf("unexpected wire %+v", w)
	}
	if w.RequestID != "r1" {
		t.Fatalf("request id = %q", w.RequestID)
	}

	status, w = Error(nil, "r2")
	if status != http.StatusOK || w.Status != "OK" {
		t.Fatalf("nil error should produce OK, got %d %+v", status, w)
	}
}
