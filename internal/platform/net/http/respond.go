// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/logger"
	pnet "facilities/internal/platform/net"
)

// Envelope is the body of every api response, success or failure
type Envelope = pnet.Wire

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return style handlers produce. A Body that is an error picks its own status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Error(err, reqID)
		if status >= stdhttp.StatusInternalServerError {
			logger.C(r.Context()).Error().Err(err).
				Stringer("code", perr.CodeOf(err)).
				Str("path", r.URL.Path).
				Msg("request failed")
		}
		JSON(w, status, env)
		return
	}

	switch resp.Status {
	case 0:
		resp.Status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	_, env := pnet.OK(resp.Body, reqID)
	env.StatusCode, env.Status = resp.Status, stdhttp.StatusText(resp.Status)
	JSON(w, resp.Status, env)
}

func OK(data any) Response       { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response  { return Response{Status: stdhttp.StatusCreated, Body: data} }
func Accepted(data any) Response { return Response{Status: stdhttp.StatusAccepted, Body: data} }
func NoContent() Response        { return Response{Status: stdhttp.StatusNoContent} }

// Error defers status and envelope to the error code
func Error(err error) Response { return Response{Body: err} }
