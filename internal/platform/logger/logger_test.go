package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":    "trace",
		"DEBUG":    "debug",
		"warning":  "warn",
		"error":    "error",
		"":         "info",
		" junk ":   "info",
		"disabled": "disabled",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "facilities-test", Writer: &buf})

	ctx := WithRequest(context.Background(), "req-1")
	ctx = WithCycle(ctx, "cycle-9")
	if got := CycleID(ctx); got != "cycle-9" {
		t.Fatalf("CycleID = %q", got)
	}

	C(ctx).Info().Msg("hello")
	Named("engine").Info().Msg("named")

	out := buf.String()
	// Init is process-wide; another test may have initialised first with a different writer
	if out == "" {
		t.Skip("root logger initialised elsewhere")
	}
	for _, want := range []string{`"request_id":"req-1"`, `"cycle_id":"cycle-9"`, `"component":"engine"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %s: %s", want, out)
		}
	}
}

func TestWithCycleEmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	if WithCycle(ctx, "") != ctx {
		t.Fatal("empty cycle id should return ctx unchanged")
	}
	if CycleID(ctx) != "" {
		t.Fatal("expected empty cycle id")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-2")
	if RequestID(ctx) != "req-2" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	if WithRequest(ctx, "") != ctx {
		t.Fatal("empty request id should return ctx unchanged")
	}
}
