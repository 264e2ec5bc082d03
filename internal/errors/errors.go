package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/daypad/internal/logger"
)

// HintError attaches a user-facing remedy to an underlying error.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string { return e.Err.Error() }

func (e *HintError) Unwrap() error { return e.Err }

// WithHint wraps err so that Format prints hint on a second line.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintError{Err: err, Hint: hint}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	var h *HintError
	if stderrors.As(err, &h) && h.Hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, h.Hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("command failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
