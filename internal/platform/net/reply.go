package net

import (
	"net/http"

	perr "facilities/internal/platform/errors"
)

// Wire is the response envelope. It lives here so middleware can answer without the http helpers
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// OK wraps data in a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	w := envelope(http.StatusOK, reqID)
	w.Data = data
	return http.StatusOK, w
}

// Error maps err to its status and envelope; nil is a plain OK
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status := perr.HTTPStatus(err)
	e := perr.WireFrom(err)
	w := envelope(status, reqID)
	w.Code, w.Error, w.Field = e.Code, e.Message, e.Field
	return status, w
}
