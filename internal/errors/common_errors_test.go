package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "usage", errType: ErrTypeUsage, expected: "USAGE"},
		{name: "input not found", errType: ErrTypeInputNotFound, expected: "INPUT_NOT_FOUND"},
		{name: "read", errType: ErrTypeRead, expected: "READ"},
		{name: "row arity", errType: ErrTypeRowArity, expected: "ROW_ARITY"},
		{name: "row content", errType: ErrTypeRowContent, expected: "ROW_CONTENT"},
		{name: "lookup", errType: ErrTypeLookup, expected: "LOOKUP"},
		{name: "empty filter", errType: ErrTypeEmptyFilter, expected: "EMPTY_FILTER"},
		{name: "output write", errType: ErrTypeOutputWrite, expected: "OUTPUT_WRITE"},
		{name: "export", errType: ErrTypeExport, expected: "EXPORT"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeLookup, Message: "No record for year 2010."},
			wantMessage: "[LOOKUP] No record for year 2010.",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeRead,
				Message: "Error in reading data from csv file.",
				Cause:   fmt.Errorf("unexpected EOF"),
			},
			wantMessage: "[READ] Error in reading data from csv file.: unexpected EOF",
		},
		{
			name:        "error with empty message",
			appError:    &AppError{Type: ErrTypeConfig},
			wantMessage: "[CONFIG] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := os.ErrNotExist
	err := NewInputNotFoundError("crimes.csv", cause)

	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Same(t, err, errors.Unwrap(fmt.Errorf("wrapped: %w", err)))
	assert.Nil(t, NewUsageError("bad").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeExport, Message: "export failed"}

	got := err.WithContext("path", "out.xlsx").WithContext("sheet", "Report")

	assert.Same(t, err, got)
	assert.Equal(t, "out.xlsx", err.Context["path"])
	assert.Equal(t, "Report", err.Context["sheet"])
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantType    ErrorType
		wantMessage string
		wantContext map[string]interface{}
	}{
		{
			name:        "usage",
			err:         NewUsageError("Invalid."),
			wantType:    ErrTypeUsage,
			wantMessage: "Invalid.",
			wantContext: map[string]interface{}{},
		},
		{
			name:        "input not found",
			err:         NewInputNotFoundError("data/crimes.csv", nil),
			wantType:    ErrTypeInputNotFound,
			wantMessage: "Crime data file does not exist at path: data/crimes.csv",
			wantContext: map[string]interface{}{"path": "data/crimes.csv"},
		},
		{
			name:        "read",
			err:         NewReadError("crimes.csv", errors.New("boom")),
			wantType:    ErrTypeRead,
			wantMessage: "Error in reading data from csv file.",
			wantContext: map[string]interface{}{"path": "crimes.csv"},
		},
		{
			name:        "row arity",
			err:         NewRowArityError(3, 7, 8),
			wantType:    ErrTypeRowArity,
			wantMessage: "Row 3 contains 7 values. It should contain 8.",
			wantContext: map[string]interface{}{"row": 3, "observed": 7, "expected": 8},
		},
		{
			name:        "row content",
			err:         NewRowContentError(2, "murders", errors.New("invalid syntax")),
			wantType:    ErrTypeRowContent,
			wantMessage: "Row 2 contains invalid value.",
			wantContext: map[string]interface{}{"row": 2, "column": "murders"},
		},
		{
			name:        "lookup",
			err:         NewLookupError(2010),
			wantType:    ErrTypeLookup,
			wantMessage: "No record for year 2010.",
			wantContext: map[string]interface{}{"year": 2010},
		},
		{
			name:        "empty filter",
			err:         NewEmptyFilterError("thefts", 1999, 2004),
			wantType:    ErrTypeEmptyFilter,
			wantMessage: "No records between 1999 and 2004 for thefts.",
			wantContext: map[string]interface{}{"statistic": "thefts", "from": 1999, "to": 2004},
		},
		{
			name:        "output write",
			err:         NewOutputWriteError("/nope/report.txt", nil),
			wantType:    ErrTypeOutputWrite,
			wantMessage: "Unable to create report file at : /nope/report.txt",
			wantContext: map[string]interface{}{"path": "/nope/report.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMessage, tt.err.Message)
			assert.Equal(t, tt.wantContext, tt.err.Context)
		})
	}
}

func TestTypeOfAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewRowArityError(1, 2, 8))

	assert.Equal(t, ErrTypeRowArity, TypeOf(wrapped))
	assert.True(t, IsType(wrapped, ErrTypeRowArity))
	assert.False(t, IsType(wrapped, ErrTypeRowContent))
	assert.Equal(t, "Row 1 contains 2 values. It should contain 8.", Message(wrapped))

	plain := errors.New("plain failure")
	assert.Equal(t, ErrorType(""), TypeOf(plain))
	assert.Equal(t, "plain failure", Message(plain))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitOK},
		{name: "no data", err: ErrNoData, want: ExitOK},
		{name: "wrapped no data", err: fmt.Errorf("analyze: %w", ErrNoData), want: ExitOK},
		{name: "usage", err: NewUsageError("Invalid."), want: ExitUsage},
		{name: "input not found", err: NewInputNotFoundError("x.csv", nil), want: ExitFailure},
		{name: "row content", err: NewRowContentError(1, "year", nil), want: ExitFailure},
		{name: "output write", err: NewOutputWriteError("r.txt", nil), want: ExitFailure},
		{name: "plain error", err: errors.New("boom"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
