package errors

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeDB, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestCodeNames(t *testing.T) {
	if ErrorCodeInvalidArgument.String() != "invalid_argument" {
		t.Fatalf("name = %s", ErrorCodeInvalidArgument)
	}
	if ErrorCode(9999).String() != "code(9999)" {
		t.Fatalf("unknown name = %s", ErrorCode(9999))
	}
}

func TestWrapAndWire(t *testing.T) {
	cause := stderrs.New("disk full")
	err := Wrap(cause, ErrorCodeDB, "save active")
	if err.Error() != "save active: disk full" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped error should unwrap to cause")
	}
	if w := WireFrom(fmt.Errorf("outer: %w", err)); w.Message != "save active" || w.Code != ErrorCodeDB {
		t.Fatalf("cause leaked or code lost: %+v", w)
	}
	w := WireFrom(WithField(InvalidArgf("bad id %q", "x"), "id"))
	if w.Code != ErrorCodeInvalidArgument || w.Field != "id" || w.Message != `bad id "x"` {
		t.Fatalf("unexpected wire %+v", w)
	}
	if got := WireFrom(stderrs.New("plain")); got.Code != ErrorCodeUnknown {
		t.Fatalf("foreign error should map to unknown, got %v", got.Code)
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatal("WrapIf(nil) should be nil")
	}
	plain := stderrs.New("plain")
	if WithField(plain, "id") != plain {
		t.Fatal("WithField should pass foreign errors through")
	}
}

func TestSugar(t *testing.T) {
	if !IsCode(Conflictf("busy"), ErrorCodeConflict) {
		t.Fatal("Conflictf code")
	}
	if !IsCode(NotFoundf("gone"), ErrorCodeNotFound) {
		t.Fatal("NotFoundf code")
	}
	if !IsCode(Unavailablef("down"), ErrorCodeUnavailable) {
		t.Fatal("Unavailablef code")
	}
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatal("nil *Error should render <nil>")
	}
}

func TestFromSQL(t *testing.T) {
	if FromSQL(nil, "x") != nil {
		t.Fatal("nil in, nil out")
	}
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, ErrorCodeDuplicateKey},
		{"check", &pgconn.PgError{Code: "23514"}, ErrorCodeValidation},
		{"readonly", &pgconn.PgError{Code: "25006"}, ErrorCodeUnavailable},
		{"serialization", &pgconn.PgError{Code: "40001"}, ErrorCodeUnavailable},
		{"other pg", &pgconn.PgError{Code: "XX000"}, ErrorCodeDB},
		{"no rows", sql.ErrNoRows, ErrorCodeNotFound},
		{"deadline", context.DeadlineExceeded, ErrorCodeTimeout},
		{"canceled", context.Canceled, ErrorCodeDB},
		{"sqlite busy", fmt.Errorf("exec: %w", stderrs.New("database is locked (5) (SQLITE_BUSY)")), ErrorCodeUnavailable},
		{"foreign", stderrs.New("syntax error"), ErrorCodeDB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(FromSQLf(tc.err, "op %d", 1)); got != tc.want {
				t.Fatalf("code = %v, want %v", got, tc.want)
			}
		})
	}
}
