package httpkit

import (
	"net/http"
	"strings"

	perrs "facilities/internal/platform/errors"
	pnet "facilities/internal/platform/net"
)

// Actor returns the authenticated admin actor, or "anonymous" on open routes
func Actor(r *http.Request) string {
	if a := pnet.Actor(r.Context()); a != "" {
		return a
	}
	return "anonymous"
}

// BearerToken returns the raw bearer token from the Authorization header
func BearerToken(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
