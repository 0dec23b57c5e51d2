package config

import (
	"testing"
	"time"

	kit "facilities/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	svc := New().Prefix("FACILITIES_")
	if got := svc.key("WORKERS"); got != "FACILITIES_WORKERS" {
		t.Fatalf("key() = %q", got)
	}
	if got := svc.Prefix("PURGE_").key("AFTER"); got != "FACILITIES_PURGE_AFTER" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  facilities ")
	if got := c.MustString("NAME"); got != "facilities" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayDurationAcceptsDays(t *testing.T) {
	c := New().Prefix("D_")
	t.Setenv("D_TOMBSTONE", "3d")
	if got := c.MayDuration("TOMBSTONE", time.Hour); got != 72*time.Hour {
		t.Fatalf("MayDuration(3d) = %v", got)
	}
	t.Setenv("D_MIXED", "1d12h")
	if got := c.MayDuration("MIXED", 0); got != 36*time.Hour {
		t.Fatalf("MayDuration(1d12h) = %v", got)
	}
	t.Setenv("D_BAD", "soon")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("invalid should fall back, got %v", got)
	}
	if got := c.MayDuration("UNSET", 5*time.Second); got != 5*time.Second {
		t.Fatalf("unset should fall back, got %v", got)
	}
}

func TestMustDuration(t *testing.T) {
	c := New().Prefix("D_")
	t.Setenv("D_TIMEOUT", " 250ms ")
	if got := c.MustDuration("TIMEOUT"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	t.Setenv("D_NOPE", "xd")
	kit.MustPanic(t, func() { _ = c.MustDuration("NOPE") })
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"90m", 90 * time.Minute, false},
		{"2d", 48 * time.Hour, false},
		{"0d30m", 30 * time.Minute, false},
		{"", 0, true},
		{"-1d", 0, true},
		{"1dfoo", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDuration(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseDuration(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestMayIntBoolCSV(t *testing.T) {
	c := New().Prefix("X_")
	t.Setenv("X_N", "8")
	t.Setenv("X_BADN", "eight")
	t.Setenv("X_ON", "true")
	t.Setenv("X_LIST", " a, ,b ")
	if got := c.MayInt("N", 1); got != 8 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADN", 3); got != 3 {
		t.Fatalf("MayInt invalid = %d", got)
	}
	if !c.MayBool("ON", false) {
		t.Fatal("MayBool expected true")
	}
	got := c.MayCSV("LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("MayCSV = %v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	t.Setenv("E_KIND", "FILE")
	if got := c.MayEnum("KIND", "http", "http", "file"); got != "file" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("E_BAD", "ftp")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "http", "http", "file") })
}
