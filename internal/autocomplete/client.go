// Package autocomplete implements the wire contract between the editor and a
// local completion server: POST {"prompt"} and read back {"completion"}.
package autocomplete

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultEndpoint is the local server the editor talks to unless configured
// otherwise.
const DefaultEndpoint = "http://127.0.0.1:8000/autocomplete"

// Request is the JSON body sent to the completion endpoint.
type Request struct {
	Prompt string `json:"prompt"`
}

// Response is the JSON body returned by the completion endpoint.
// A missing completion field decodes as "".
type Response struct {
	Completion string `json:"completion"`
}

// Completer returns a completion for the given prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls a completion endpoint over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Endpoint is the full URL to POST to. Defaults to DefaultEndpoint.
	Endpoint string

	// Timeout bounds each request. Zero leaves the transport default in place.
	Timeout time.Duration

	// HTTPClient overrides the client used for requests.
	HTTPClient *http.Client

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Complete sends prompt to the endpoint and returns the completion field.
// Transport failures, non-2xx statuses, and undecodable bodies are errors.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(Request{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("autocomplete server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug("autocomplete response",
		zap.Int("promptLength", len(prompt)),
		zap.Int("completionLength", len(parsed.Completion)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return parsed.Completion, nil
}
