package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message == "" {
		return fmt.Sprintf("API error: %s %s: %s", e.Method, e.Path, status)
	}
	return fmt.Sprintf("API error: %s %s: %s: %s", e.Method, e.Path, status, e.Message)
}

// HTTPStatus returns the response status code.
func (e *Error) HTTPStatus() int {
	return e.StatusCode
}

// fastAPIError is the error body FastAPI produces. Detail is a string for
// HTTPException and a list of field errors for request validation failures.
type fastAPIError struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func newError(status int, method, path string, body []byte) *Error {
	return &Error{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Message:    extractMessage(body),
	}
}

func extractMessage(body []byte) string {
	var fe fastAPIError
	if err := json.Unmarshal(body, &fe); err != nil || len(fe.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var detail string
	if err := json.Unmarshal(fe.Detail, &detail); err == nil {
		return detail
	}

	var fields []fieldError
	if err := json.Unmarshal(fe.Detail, &fields); err == nil && len(fields) > 0 {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			loc := make([]string, 0, len(f.Loc))
			for _, l := range f.Loc {
				loc = append(loc, fmt.Sprint(l))
			}
			if len(loc) > 0 {
				msgs = append(msgs, strings.Join(loc, ".")+": "+f.Msg)
			} else {
				msgs = append(msgs, f.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return strings.TrimSpace(string(fe.Detail))
}

// StatusCode returns the HTTP status of an *Error in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
