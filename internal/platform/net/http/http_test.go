package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rr.Body.String())
	}
	return env
}

func newRouter() (Router, stdhttp.Handler) {
	m := chi.NewRouter()
	return AdaptChi(m), m
}

func TestJSONHandlerRoundTrip(t *testing.T) {
	r, h := newRouter()
	r.Route("/v1", func(sub Router) {
		sub.Post("/echo", JSONHandler(func(_ *stdhttp.Request, in echoIn) (any, error) {
			return map[string]string{"hello": in.Name}, nil
		}))
		sub.Get("/items/{id}", JSONHandlerNoBody(func(req *stdhttp.Request) (any, error) {
			if Param(req, "id") == "missing" {
				return nil, perr.NotFoundf("no such item")
			}
			return Created(Param(req, "id")), nil
		}))
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/v1/echo", strings.NewReader(`{"name":"vha"}`)))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if env := decode(t, rr); env.Data.(map[string]any)["hello"] != "vha" {
		t.Fatalf("unexpected data %+v", env.Data)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/v1/echo", strings.NewReader(`{}`)))
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("validation status = %d", rr.Code)
	}
	if env := decode(t, rr); env.Code != perr.ErrorCodeValidation || env.Field != "name" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/v1/items/missing", nil))
	if rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("not found status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/v1/items/vha_402", nil))
	if rr.Code != stdhttp.StatusCreated || decode(t, rr).Data != "vha_402" {
		t.Fatalf("created passthrough failed: %d %s", rr.Code, rr.Body.String())
	}
}

func TestJSONHandlerOptions(t *testing.T) {
	r, h := newRouter()
	r.Post("/lenient", JSONHandler(func(_ *stdhttp.Request, in echoIn) (any, error) {
		return in.Name, nil
	}, bind.JSONOptions{DisallowUnknown: false}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/lenient", strings.NewReader(`{"name":"a","extra":1}`)))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestResponseWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response { return NoContent() })(rr, httptest.NewRequest(stdhttp.MethodDelete, "/", nil))
	if rr.Code != stdhttp.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("no content: %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response {
		return Response{Status: stdhttp.StatusAccepted, Body: "queued", Header: stdhttp.Header{"X-Cycle": {"c1"}}}
	})(rr, httptest.NewRequest(stdhttp.MethodPost, "/", nil))
	if rr.Code != stdhttp.StatusAccepted || rr.Header().Get("X-Cycle") != "c1" {
		t.Fatalf("accepted: %d %v", rr.Code, rr.Header())
	}

	rr = httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response { return Error(errors.New("plain")) })(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rr.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("foreign error status = %d", rr.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	r, h := newRouter()
	MountProfiler(r, "/debug", false)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler should 404, got %d", rr.Code)
	}

	r, h = newRouter()
	MountProfiler(r, "/debug", true)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler status = %d", rr.Code)
	}
}
