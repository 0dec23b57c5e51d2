package http

import perr "facilities/internal/platform/errors"

var errNoReport = perr.New(perr.ErrorCodeNotFound, "no report produced yet")
