// Package httpkit is the http surface modules build routes with, so they never
// import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "facilities/internal/platform/net/http"
	"facilities/internal/platform/net/http/bind"
)

type (
	// Router is the route registration seam
	Router = phttp.Router
	// Envelope is the wire shape of every JSON response
	Envelope = phttp.Envelope
	// BindOptions tunes body decoding for one route, e.g. a larger upload cap
	BindOptions = bind.JSONOptions
)

// NoContent is returned by handlers that answer 204
func NoContent() phttp.Response { return phttp.NoContent() }

// Param is a chi path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }
