package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"facilities/internal/core/facility"
	"facilities/internal/modkit/module"
	"facilities/internal/platform/config"
	"facilities/internal/platform/metrics"
	phttp "facilities/internal/platform/net/http"
	"facilities/internal/platform/store"
	kit "facilities/internal/platform/testkit"
	"facilities/internal/services/facilities/domain"
	facilitiesmod "facilities/internal/services/facilities/module"

	"github.com/go-chi/chi/v5"
)

func TestMount(t *testing.T) {
	kit.Serial(t)
	t.Cleanup(module.Reset)

	snap := domain.CollectorFunc(func(context.Context) ([]facility.Payload, error) {
		return []facility.Payload{{ID: facility.MustParseID("vc_0101V"), Name: "Vet Center"}}, nil
	})

	mux := chi.NewRouter()
	reg := metrics.New()
	mounted := Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New(),
		Store:         &store.Store{},
		Metrics:       reg,
		AdminInflight: 2,
		Facilities:    facilitiesmod.Options{Collector: snap},
	})
	if err := mounted.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	wait := mounted.Start(ctx)
	cancel()
	wait()
	if _, ok := module.PortsAs[facilitiesmod.Ports]("facilities"); !ok {
		t.Fatal("facilities ports should be registered")
	}

	serve := func(method, path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr
	}

	if rr := serve(http.MethodGet, "/api/v1/meta/version"); rr.Code != http.StatusOK {
		t.Fatalf("version: %d", rr.Code)
	}
	if rr := serve(http.MethodPost, "/api/v1/facilities/reload"); rr.Code != http.StatusOK {
		t.Fatalf("reload: %d %s", rr.Code, rr.Body.String())
	}
	rr := serve(http.MethodGet, "/metrics")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "facilities_reload_cycles_total") {
		t.Fatalf("metrics: %d", rr.Code)
	}
}
