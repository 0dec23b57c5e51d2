package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "facilities/internal/platform/errors"
	"facilities/internal/platform/net/middleware"
)

// TokenFunc resolves a bearer token to an actor name
type TokenFunc func(token string) (actor string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// StaticTokens builds a Port from "actor:token" pairs, e.g. FACILITIES_ADMIN_TOKENS=ops:s3cret.
// Returns a nil port when no pair is usable so routes stay open in local setups
func StaticTokens(pairs []string) middleware.AuthPort {
	type entry struct{ actor, token string }
	var entries []entry
	for _, p := range pairs {
		actor, token, ok := strings.Cut(strings.TrimSpace(p), ":")
		if !ok || actor == "" || token == "" {
			continue
		}
		entries = append(entries, entry{actor: actor, token: token})
	}
	if len(entries) == 0 {
		return nil
	}
	return NewPortFunc(func(tok string) (string, error) {
		for _, e := range entries {
			if subtle.ConstantTimeCompare([]byte(e.token), []byte(tok)) == 1 {
				return e.actor, nil
			}
		}
		return "", perrs.Unauthorizedf("invalid bearer token")
	})
}

// Parse extracts the actor behind the Authorization bearer token
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return "", err
	}
	if p == nil || p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	actor, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return actor, nil
}
