package autocomplete

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(ClientConfig{})
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
	assert.Equal(t, "http://127.0.0.1:8000/autocomplete", c.Endpoint())
	assert.NotNil(t, c.httpClient)
	assert.Equal(t, time.Duration(0), c.httpClient.Timeout)
	assert.NotNil(t, c.logger)
}

func TestClient_Complete(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expected      string
		expectedError string
	}{
		{
			name:     "completion present",
			status:   http.StatusOK,
			body:     `{"completion": "foo()"}`,
			expected: "foo()",
		},
		{
			name:     "missing completion field",
			status:   http.StatusOK,
			body:     `{}`,
			expected: "",
		},
		{
			name:     "extra fields ignored",
			status:   http.StatusOK,
			body:     `{"completion": "x", "model": "gpt2-java"}`,
			expected: "x",
		},
		{
			name:          "invalid json",
			status:        http.StatusOK,
			body:          `not json`,
			expectedError: "failed to parse response",
		},
		{
			name:          "server error",
			status:        http.StatusInternalServerError,
			body:          `{"detail": "boom"}`,
			expectedError: "status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(ClientConfig{Endpoint: server.URL, Logger: zaptest.NewLogger(t)})
			got, err := c.Complete(context.Background(), "int x")

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClient_Complete_RequestShape(t *testing.T) {
	var (
		method      string
		path        string
		contentType string
		body        map[string]any
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"completion": ""}`))
	}))
	defer server.Close()

	c := NewClient(ClientConfig{Endpoint: server.URL + "/autocomplete"})
	_, err := c.Complete(context.Background(), "class A {\n  ")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/autocomplete", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]any{"prompt": "class A {\n  "}, body)
}

func TestClient_Complete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(ClientConfig{Endpoint: url})
	_, err := c.Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestClient_Complete_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewClient(ClientConfig{Endpoint: server.URL, Timeout: 20 * time.Millisecond})
	_, err := c.Complete(context.Background(), "x")
	require.Error(t, err)
}
