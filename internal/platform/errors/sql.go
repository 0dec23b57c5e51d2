package errors

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the lifecycle stores can hit
var sqlStateCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"40001": ErrorCodeUnavailable,     // serialization_failure
	"40P01": ErrorCodeUnavailable,     // deadlock_detected
	"55P03": ErrorCodeUnavailable,     // lock_not_available
}

// transient driver messages without a SQLSTATE, sqlite busy among them
var transientText = []string{
	"database is locked",
	"sqlite_busy",
	"connection refused",
	"commit unexpectedly resulted in rollback",
	"terminating connection due to administrator command",
}

// IsNoRows reports the no rows sentinel of pgx or database/sql
func IsNoRows(err error) bool {
	return stderrs.Is(err, pgx.ErrNoRows) || stderrs.Is(err, sql.ErrNoRows)
}

// FromSQL wraps a store error from either sql backend with a mapped code. nil stays nil.
// Lock and serialization failures come back as Unavailable so callers can retry the cycle
func FromSQL(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, sqlCode(err), msg)
}

// FromSQLf is FromSQL with a formatted message
func FromSQLf(err error, format string, a ...any) error {
	return FromSQL(err, fmt.Sprintf(format, a...))
}

func sqlCode(err error) ErrorCode {
	switch {
	case IsNoRows(err):
		return ErrorCodeNotFound
	case stderrs.Is(err, context.DeadlineExceeded):
		return ErrorCodeTimeout
	case stderrs.Is(err, context.Canceled):
		return ErrorCodeDB
	}
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		if c, ok := sqlStateCodes[pgErr.Code]; ok {
			return c
		}
		return ErrorCodeDB
	}
	msg := strings.ToLower(err.Error())
	for _, t := range transientText {
		if strings.Contains(msg, t) {
			return ErrorCodeUnavailable
		}
	}
	return ErrorCodeDB
}
