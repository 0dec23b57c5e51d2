package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/logger"
	pnet "facilities/internal/platform/net"
)

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuth(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.Actor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	port := portFunc(func(r *http.Request) (string, error) {
		if r.Header.Get("Authorization") == "Bearer good" {
			return "ops", nil
		}
		return "", perr.Unauthorizedf("invalid bearer token")
	})
	h := Auth(port, writeJSON)(next)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent || seen != "ops" {
		t.Fatalf("authorized: status=%d actor=%q", rr.Code, seen)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthorized status = %d", rr.Code)
	}
	var body pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body.Code != perr.ErrorCodeUnauthorized {
		t.Fatalf("body = %s err=%v", rr.Body.String(), err)
	}

	rr = httptest.NewRecorder()
	Auth(nil, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("nil port should pass through, got %d", rr.Code)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := RequestID()(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	})))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "panic recovered" || body.Code != perr.ErrorCodePanic || body.RequestID != "rid-1" {
		t.Fatalf("unexpected body %+v", body)
	}
	if rr.Header().Get("X-Request-ID") != "rid-1" {
		t.Fatalf("request id header not mirrored")
	}
}

func TestAccessLogCapturesStatus(t *testing.T) {
	var (
		cw    *statusRecorder
		bound string
	)
	h := RequestID()(AccessLogZerolog(AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cw, _ = w.(*statusRecorder)
		bound = logger.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	})))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "rid-2")
	h.ServeHTTP(rr, req)
	if cw == nil || cw.status != http.StatusTeapot || cw.bytes != 5 {
		t.Fatalf("capture = %+v", cw)
	}
	if bound != "rid-2" {
		t.Fatalf("request id not bound to logger context: %q", bound)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(CORSOptions{AllowedOrigins: []string{"https://ops.example"}})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/facilities/reload", nil)
	req.Header.Set("Origin", "https://ops.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example" {
		t.Fatalf("allow origin = %q", got)
	}
}
