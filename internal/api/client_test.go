package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/praxable/praxable-cli/internal/errors"
)

func TestClientRequestHeaders(t *testing.T) {
	var captured http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL + "/"})

	_, err := client.Post(context.Background(), "/test", map[string]string{"a": "b"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", captured.Get("Content-Type"))
	assert.Equal(t, "application/json", captured.Get("Accept"))
	assert.Contains(t, captured.Get("User-Agent"), "praxable-cli/")
	assert.Equal(t, server.URL, client.BaseURL())
}

func TestClientDefaults(t *testing.T) {
	client := New(Config{})
	assert.Equal(t, "http://127.0.0.1:8000", client.BaseURL())
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClientNoRetryOnServerError(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"calendar unavailable"}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Get(context.Background(), "/calendar/today")
	require.Error(t, err)

	assert.Equal(t, 1, attempts, "client must not retry")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "GET", apiErr.Method)
	assert.Equal(t, "/calendar/today", apiErr.Path)
	assert.Equal(t, "calendar unavailable", apiErr.Message)
	assert.True(t, apperrors.IsTransport(err))
}

func TestClientErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"fastapi string detail", `{"detail":"Task not found"}`, "Task not found"},
		{"fastapi validation detail", `{"detail":[{"loc":["body","value_name"],"msg":"field required"}]}`, "body.value_name: field required"},
		{"plain text", "Internal Server Error", "Internal Server Error"},
		{"empty body", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(Config{BaseURL: server.URL}).Get(context.Background(), "/x")
			require.Error(t, err)
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
		})
	}
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Config{BaseURL: url}).Get(context.Background(), "/values")
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.Equal(t, 0, StatusCode(err))
}

func TestClientContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(Config{BaseURL: server.URL}).Get(ctx, "/tasks")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorString(t *testing.T) {
	err := &Error{StatusCode: 404, Method: "DELETE", Path: "/values/Health", Message: "Value not found"}
	assert.Equal(t, "API error: DELETE /values/Health: 404 Not Found: Value not found", err.Error())
	assert.True(t, IsNotFound(err))

	bare := &Error{StatusCode: 500, Method: "GET", Path: "/tasks"}
	assert.Equal(t, "API error: GET /tasks: 500 Internal Server Error", bare.Error())
}
