package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atinylittleshell/ghosttext/internal/host"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://127.0.0.1:8000/autocomplete", cfg.Endpoint)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, host.OverlayStyle{Color: "8", Italic: true, Faint: true}, cfg.OverlayStyle())
}

func TestLoader_LoadFromFile_Missing(t *testing.T) {
	loader := NewLoader(zaptest.NewLogger(t))

	result, err := loader.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
endpoint: http://localhost:9000/autocomplete
debounce: 250ms
request_timeout: 5s
log_level: debug
ghost:
  color: "#888888"
  italic: false
  faint: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := NewLoader(nil).LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	cfg := result.Config
	assert.Equal(t, "http://localhost:9000/autocomplete", cfg.Endpoint)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, GhostConfig{Color: "#888888", Italic: false, Faint: true}, cfg.Ghost)

	client := cfg.ClientConfig()
	assert.Equal(t, "http://localhost:9000/autocomplete", client.Endpoint)
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestLoader_LoadFromFile_Unreadable(t *testing.T) {
	// A directory cannot be read as a file.
	_, err := NewLoader(nil).LoadFromFile(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoader_LoadFromBytes(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		expectedErrors []string
		check          func(t *testing.T, cfg *Config)
	}{
		{
			name:    "empty content keeps defaults",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name:    "partial content merges with defaults",
			content: "debounce: 2s\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2*time.Second, cfg.Debounce)
				assert.Equal(t, DefaultConfig().Endpoint, cfg.Endpoint)
				assert.True(t, cfg.Ghost.Italic)
			},
		},
		{
			name:           "malformed yaml",
			content:        "endpoint: [unclosed",
			expectedErrors: []string{"parse error"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name:           "bad duration",
			content:        "debounce: soon\n",
			expectedErrors: []string{"parse error"},
		},
		{
			name:           "non-http endpoint",
			content:        "endpoint: ftp://example.com/x\n",
			expectedErrors: []string{"http or https"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig().Endpoint, cfg.Endpoint)
			},
		},
		{
			name:           "endpoint without host",
			content:        "endpoint: http:///autocomplete\n",
			expectedErrors: []string{"must include a host"},
		},
		{
			name:           "zero debounce",
			content:        "debounce: 0s\n",
			expectedErrors: []string{"debounce must be positive"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, time.Second, cfg.Debounce)
			},
		},
		{
			name:           "negative timeout",
			content:        "request_timeout: -1s\n",
			expectedErrors: []string{"request_timeout must not be negative"},
		},
		{
			name:           "unknown log level",
			content:        "log_level: chatty\n",
			expectedErrors: []string{"invalid log_level"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.LogLevel)
			},
		},
		{
			name:           "empty ghost color",
			content:        "ghost:\n  color: \"\"\n",
			expectedErrors: []string{"ghost.color must not be empty"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8", cfg.Ghost.Color)
			},
		},
		{
			name:           "several invalid values reported together",
			content:        "debounce: 0s\nlog_level: chatty\n",
			expectedErrors: []string{"debounce must be positive", "invalid log_level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewLoader(zaptest.NewLogger(t)).LoadFromBytes([]byte(tt.content))
			require.NotNil(t, result.Config)

			require.Len(t, result.Errors, len(tt.expectedErrors))
			for i, expected := range tt.expectedErrors {
				assert.Contains(t, result.Errors[i].Error(), expected)
			}

			if tt.check != nil {
				tt.check(t, result.Config)
			}
		})
	}
}

func TestConfig_ApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyOverrides("", 0))
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, cfg.ApplyOverrides("https://complete.example.com/autocomplete", 300*time.Millisecond))
	assert.Equal(t, "https://complete.example.com/autocomplete", cfg.Endpoint)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)

	err := cfg.ApplyOverrides("localhost:8000", 0)
	require.Error(t, err)
	assert.Equal(t, "https://complete.example.com/autocomplete", cfg.Endpoint)

	require.Error(t, cfg.ApplyOverrides("", -time.Second))
}
