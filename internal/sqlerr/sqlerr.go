// Package sqlerr classifies database driver errors.
//
// PostgreSQL errors are mapped from their SQLSTATE, MySQL errors from their
// server error number and SQLite errors from the constraint message, so the
// rest of the app can switch on one Code regardless of the configured driver.
package sqlerr

import (
	"fmt"
	"strings"
)

// Code is a driver-independent error category.
type Code int

const (
	Other Code = iota
	NotNullViolation
	ForeignKeyViolation
	UniqueViolation
	CheckViolation
	InvalidTextRepresentation
	StringDataRightTruncation
	ConnectionFailure
)

func (c Code) String() string {
	switch c {
	case NotNullViolation:
		return "not_null_violation"
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case UniqueViolation:
		return "unique_violation"
	case CheckViolation:
		return "check_violation"
	case InvalidTextRepresentation:
		return "invalid_text_representation"
	case StringDataRightTruncation:
		return "string_data_right_truncation"
	case ConnectionFailure:
		return "connection_failure"
	default:
		return "other"
	}
}

// Severity mirrors the PostgreSQL severity levels.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
	SeverityDebug
	SeverityInfo
	SeverityLog
)

// Error is a classified driver error. The original driver error is kept and
// returned by Unwrap.
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
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	case "22001":
		return StringDataRightTruncation
	}
	if strings.HasPrefix(sqlState, "08") {
		return ConnectionFailure
	}
	return Other
}

// MapSeverity maps the PostgreSQL severity text to a Severity.
func MapSeverity(severity string) Severity {
	switch strings.ToUpper(severity) {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityUnknown
	}
}
