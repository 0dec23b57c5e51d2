package httpkit

import (
	"net/http"

	phttp "facilities/internal/platform/net/http"
)

// GetJSON mounts a body-less JSON handler under GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// PostJSON mounts a JSON handler under POST; opts tune body limits for large payloads
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...BindOptions) {
	r.Post(path, phttp.JSONHandler(h, opts...))
}

// Post registers a no-body handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// Delete registers a no-body handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.JSONHandlerNoBody(h))
}
