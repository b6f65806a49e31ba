package errors

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      errors.New("failed to connect: connection refused"),
			expected: "Error: failed to connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "something went wrong",
			args:     nil,
			expected: "Error: something went wrong",
		},
		{
			name:     "formatted message with string",
			format:   "failed to load %s",
			args:     []interface{}{"database"},
			expected: "Error: failed to load database",
		},
		{
			name:     "formatted message with multiple args",
			format:   "connection to %s:%d failed",
			args:     []interface{}{"localhost", 5432},
			expected: "Error: connection to localhost:5432 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		// This is the subprocess - call Fatal
		Fatal(errors.New("test error"))
		return
	}

	// Run the test in a subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestFatal")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		// Check that exit code is 1
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		// Check that stderr contains the error message
		stderrStr := stderr.String()
		if !strings.Contains(stderrStr, "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderrStr, "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		// This is the subprocess - call Fatal with nil
		Fatal(nil)
		// If we get here, the function returned normally (which is correct)
		os.Exit(0)
	}

	// Run the test in a subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	err := cmd.Run()
	if err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

// TestFatalf tests the Fatalf function using exec helper process
func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		// This is the subprocess - call Fatalf
		Fatalf("connection to %s:%d failed", "localhost", 5432)
		return
	}

	// Run the test in a subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		// Check that exit code is 1
		if e.ExitCode() != 1 {
			t.Errorf("Fatalf() exit code = %d, want 1", e.ExitCode())
		}
		// Check that stderr contains the formatted error message
		stderrStr := stderr.String()
		if !strings.Contains(stderrStr, "Error: connection to localhost:5432 failed") {
			t.Errorf("Fatalf() stderr = %q, want to contain %q", stderrStr, "Error: connection to localhost:5432 failed")
		}
	} else {
		t.Errorf("Fatalf() did not exit with error: %v", err)
	}
}

type fakeStatusError struct{ code int }

func (e *fakeStatusError) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *fakeStatusError) HTTPStatus() int { return e.code }

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"bare message", Validation("select at least one value"), "select at least one value"},
		{"formatted", Validationf("rating %d out of range", 11), "rating 11 out of range"},
		{"with field", FieldValidation("api_key", "must start with AIza"), "api_key: must start with AIza"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.expected)
			}
			if !IsValidation(tt.err) {
				t.Error("IsValidation() = false, want true")
			}
			wrapped := fmt.Errorf("recommend: %w", tt.err)
			if !IsValidation(wrapped) {
				t.Error("IsValidation() on wrapped error = false, want true")
			}
		})
	}

	if IsValidation(errors.New("plain")) {
		t.Error("IsValidation() on plain error = true, want false")
	}
}

func TestIsTransport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"validation", Validation("bad"), false},
		{"status error", &fakeStatusError{code: 500}, true},
		{"wrapped status error", fmt.Errorf("list values: %w", &fakeStatusError{code: 404}), true},
		{"url error", &url.Error{Op: "Get", URL: "http://127.0.0.1:8000/values", Err: errors.New("connection refused")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransport(tt.err); got != tt.expected {
				t.Errorf("IsTransport(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestPartialSequenceError(t *testing.T) {
	cause := errors.New("500 Internal Server Error")
	err := &PartialSequenceError{Succeeded: 1, Total: 3, FailedAt: 1, Item: "Walk", Err: cause}

	want := `completed 1 of 3 before "Walk" failed: 500 Internal Server Error`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !IsPartial(fmt.Errorf("approve: %w", err)) {
		t.Error("IsPartial() = false, want true")
	}

	none := &PartialSequenceError{Succeeded: 0, Total: 3, FailedAt: 0, Err: cause}
	if IsPartial(none) {
		t.Error("IsPartial() with zero succeeded = true, want false")
	}
	if none.Error() != "completed 0 of 3 before item 1 failed: 500 Internal Server Error" {
		t.Errorf("Error() = %q", none.Error())
	}

	saved := &PartialSequenceError{Succeeded: 0, Persisted: 1, Total: 3, FailedAt: 0, Item: "Walk", Err: cause}
	if !IsPartial(saved) {
		t.Error("IsPartial() with a saved item = false, want true")
	}
	if want := `completed 0 of 3 before "Walk" failed (1 saved): 500 Internal Server Error`; saved.Error() != want {
		t.Errorf("Error() = %q, want %q", saved.Error(), want)
	}
}
