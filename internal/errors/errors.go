package errors

import (
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/praxable/praxable-cli/internal/logger"
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

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// ValidationError is a client-side rejection raised before any backend call.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Validation returns a ValidationError with no field.
func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

// Validationf returns a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// FieldValidation returns a ValidationError bound to a field.
func FieldValidation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// statusCoder is implemented by backend HTTP errors.
type statusCoder interface {
	HTTPStatus() int
}

// IsTransport reports whether err came from talking to the backend: a
// non-2xx response or a network failure.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var sc statusCoder
	if stderrors.As(err, &sc) {
		return true
	}
	var ue *url.Error
	if stderrors.As(err, &ue) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne)
}

// PartialSequenceError reports a batch that stopped part-way. Items before
// the failure stay committed on the backend. Persisted also counts the failed
// item when it was saved in part.
type PartialSequenceError struct {
	Succeeded int
	Persisted int
	Total     int
	FailedAt  int
	Item      string
	Err       error
}

func (e *PartialSequenceError) Error() string {
	var saved string
	if e.Persisted > e.Succeeded {
		saved = fmt.Sprintf(" (%d saved)", e.Persisted)
	}
	if e.Item != "" {
		return fmt.Sprintf("completed %d of %d before %q failed%s: %v", e.Succeeded, e.Total, e.Item, saved, e.Err)
	}
	return fmt.Sprintf("completed %d of %d before item %d failed%s: %v", e.Succeeded, e.Total, e.FailedAt+1, saved, e.Err)
}

func (e *PartialSequenceError) Unwrap() error {
	return e.Err
}

// IsPartial reports whether err is a PartialSequenceError that left at least
// one item on the backend.
func IsPartial(err error) bool {
	var pe *PartialSequenceError
	return stderrors.As(err, &pe) && (pe.Succeeded > 0 || pe.Persisted > 0)
}
