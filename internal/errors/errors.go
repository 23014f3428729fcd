package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/daylit-engine/internal/logger"
	"github.com/julianstephens/daylit-engine/internal/validation"
)

const (
	ExitFailure      = 1
	ExitInvalidInput = 2
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps an error to the process exit status. Rejected input exits with
// ExitInvalidInput so callers can tell bad requests from failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var verr *validation.Error
	if stderrors.As(err, &verr) {
		return ExitInvalidInput
	}
	return ExitFailure
}

// Fatal logs an error and exits the program with the code chosen by ExitCode
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}
