package middleware

import (
	"net/http"

	pstrings "facilities/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the chi compatible handler decorator
type Middleware = func(http.Handler) http.Handler

// thin constructors over chi so the stack reads the same for every entry
var (
	RequestID    = func() Middleware { return chimw.RequestID }
	RealIP       = func() Middleware { return chimw.RealIP }
	NoCache      = func() Middleware { return chimw.NoCache }
	StripSlashes = func() Middleware { return chimw.StripSlashes }
	Heartbeat    = chimw.Heartbeat
)

// Compress gzips JSON responses at level
func Compress(level int) Middleware {
	return chimw.NewCompressor(level, "application/json").Handler
}

// Throttle answers 429 once limit requests are in flight, nothing is queued
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// CORSOptions is the subset of go-chi/cors the api exposes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}
)

// CORS applies o with the admin routes' methods and headers as defaults
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
