package middleware

import (
	"net/http"

	pnet "facilities/internal/platform/net"
)

// AuthPort resolves the admin actor behind a request
type AuthPort interface {
	// Parse returns the actor name or an error (typically unauthorized)
	Parse(r *http.Request) (actor string, err error)
}

// Auth rejects requests the port cannot resolve and stores the actor on context.
// A nil port lets everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			actor, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithActor(r.Context(), actor)))
		})
	}
}
