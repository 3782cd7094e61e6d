package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeUsage         ErrorType = "USAGE"
	ErrTypeInputNotFound ErrorType = "INPUT_NOT_FOUND"
	ErrTypeRead          ErrorType = "READ"
	ErrTypeRowArity      ErrorType = "ROW_ARITY"
	ErrTypeRowContent    ErrorType = "ROW_CONTENT"
	ErrTypeLookup        ErrorType = "LOOKUP"
	ErrTypeEmptyFilter   ErrorType = "EMPTY_FILTER"
	ErrTypeOutputWrite   ErrorType = "OUTPUT_WRITE"
	ErrTypeExport        ErrorType = "EXPORT"
	ErrTypeConfig        ErrorType = "CONFIG"
)

// ErrNoData is returned when there are no records to analyze
var ErrNoData = errors.New("no data")

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewUsageError creates an invocation error
func NewUsageError(message string) *AppError {
	return NewAppError(ErrTypeUsage, message, nil)
}

// NewInputNotFoundError creates an error for a missing input file
func NewInputNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeInputNotFound,
		fmt.Sprintf("Crime data file does not exist at path: %s", path), cause).
		WithContext("path", path)
}

// NewReadError creates an error for an I/O failure while loading
func NewReadError(path string, cause error) *AppError {
	return NewAppError(ErrTypeRead, "Error in reading data from csv file.", cause).
		WithContext("path", path)
}

// NewRowArityError reports a data row whose field count differs from the header
func NewRowArityError(row, observed, expected int) *AppError {
	return NewAppError(ErrTypeRowArity,
		fmt.Sprintf("Row %d contains %d values. It should contain %d.", row, observed, expected), nil).
		WithContext("row", row).
		WithContext("observed", observed).
		WithContext("expected", expected)
}

// NewRowContentError reports a data row holding a value that is not an integer
func NewRowContentError(row int, column string, cause error) *AppError {
	return NewAppError(ErrTypeRowContent,
		fmt.Sprintf("Row %d contains invalid value.", row), cause).
		WithContext("row", row).
		WithContext("column", column)
}

// NewLookupError reports a statistic that needs a year absent from the dataset
func NewLookupError(year int) *AppError {
	return NewAppError(ErrTypeLookup,
		fmt.Sprintf("No record for year %d.", year), nil).
		WithContext("year", year)
}

// NewEmptyFilterError reports an extremum over an empty year range
func NewEmptyFilterError(statistic string, from, to int) *AppError {
	return NewAppError(ErrTypeEmptyFilter,
		fmt.Sprintf("No records between %d and %d for %s.", from, to, statistic), nil).
		WithContext("statistic", statistic).
		WithContext("from", from).
		WithContext("to", to)
}

// NewOutputWriteError reports a report destination that cannot be written
func NewOutputWriteError(path string, cause error) *AppError {
	return NewAppError(ErrTypeOutputWrite,
		fmt.Sprintf("Unable to create report file at : %s", path), cause).
		WithContext("path", path)
}

// NewExportError reports a failed optional export (workbook, metrics)
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain, or "" if none
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err's chain contains an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// Message returns the human-readable message of the first AppError in err's
// chain, falling back to err.Error().
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
