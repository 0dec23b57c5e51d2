package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "facilities/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func probe(name string, err error) Probe {
	return Probe{Name: name, Ping: func(context.Context) error { return err }}
}

func get(t *testing.T, d Deps, path string) json.RawMessage {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), d)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("%s: status = %d", path, rr.Code)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	return env.Data
}

func TestReady(t *testing.T) {
	cases := []struct {
		name string
		deps Deps
		want string
	}{
		{"nothing configured", Deps{Probes: []Probe{{Name: "pg"}, {Name: "sqlite"}, {Name: "ch"}}}, "degraded"},
		{"sqlite only", Deps{Probes: []Probe{{Name: "pg"}, probe("sqlite", nil), {Name: "ch"}}}, "ok"},
		{"pg down", Deps{Probes: []Probe{probe("pg", errors.New("refused")), {Name: "sqlite"}, probe("ch", nil)}}, "fail"},
	}
	for _, tc := range cases {
		var got ReadyResponse
		if err := json.Unmarshal(get(t, tc.deps, "/ready"), &got); err != nil {
			t.Fatal(err)
		}
		if got.Status != tc.want || len(got.Checks) != 3 {
			t.Fatalf("%s: %+v", tc.name, got)
		}
		if got.Checks[0].Name != "pg" || got.Checks[2].Name != "ch" {
			t.Fatalf("%s: checks out of order %+v", tc.name, got.Checks)
		}
	}
}

func TestHealthVersionService(t *testing.T) {
	d := Deps{ServiceName: "facilities-api", StartedAt: time.Now().Add(-time.Minute)}

	var h HealthResponse
	_ = json.Unmarshal(get(t, d, "/health"), &h)
	if !h.OK || h.Service != "facilities-api" {
		t.Fatalf("health = %+v", h)
	}

	var s ServiceResponse
	_ = json.Unmarshal(get(t, d, "/service"), &s)
	if s.Uptime < 59 {
		t.Fatalf("service = %+v", s)
	}

	var v map[string]string
	_ = json.Unmarshal(get(t, d, "/version"), &v)
	if v["service"] != "facilities-api" || v["version"] == "" {
		t.Fatalf("version = %v", v)
	}
}
