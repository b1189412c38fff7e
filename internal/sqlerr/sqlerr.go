// Package sqlerr translates database driver errors.
//
// PostgreSQL (pgconn.PgError) and SQLite (*sqlite.Error) failures are
// normalized into *Error with a driver-independent Code, then turned into
// client-facing *errs.HTTPError values by HandleError.
package sqlerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a driver-independent error category.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
)

// Severity mirrors the PostgreSQL severity levels. SQLite errors are
// always SeverityError.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s (%s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// SQLSTATE classes from https://www.postgresql.org/docs/current/errcodes-appendix.html
var pgCodes = map[string]Code{
	pgUniqueViolation:     UniqueViolation,
	pgForeignKeyViolation: ForeignKeyViolation,
	pgNotNullViolation:    NotNullViolation,
	pgCheckViolation:      CheckViolation,
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// MapCode maps a PostgreSQL SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	if c, ok := pgCodes[sqlState]; ok {
		return c
	}
	return Other
}

// MapSeverity maps the PostgreSQL severity string to a Severity.
// Unknown values fall back to SeverityError.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// ConvertPgError converts a raw PostgreSQL error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}
