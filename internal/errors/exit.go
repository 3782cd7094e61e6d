package errors

import "errors"

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error returned by the pipeline to a process exit code.
// An empty dataset is not a failure.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, ErrNoData):
		return ExitOK
	case IsType(err, ErrTypeUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}
