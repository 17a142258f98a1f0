package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://127.0.0.1:11434/v1", cfg.BaseURL)
	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, "gpt2-java", cfg.Model)
	assert.Equal(t, 128, cfg.MaxTokens)
	assert.InDelta(t, 0.8, cfg.Temperature, 0.0001)
	assert.InDelta(t, 0.95, cfg.TopP, 0.0001)
}

func TestLoadConfigFrom_Overrides(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{
		"GHOSTTEXTD_ADDR":        ":9000",
		"GHOSTTEXTD_MODEL":       "starcoder",
		"GHOSTTEXTD_API_KEY":     "secret",
		"GHOSTTEXTD_MAX_TOKENS":  "64",
		"GHOSTTEXTD_TEMPERATURE": "0.2",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "starcoder", cfg.Model)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 64, cfg.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Temperature, 0.0001)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	_, err := LoadConfigFrom(map[string]string{"GHOSTTEXTD_MAX_TOKENS": "lots"})
	require.Error(t, err)

	_, err = LoadConfigFrom(map[string]string{"GHOSTTEXTD_MAX_TOKENS": "0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}
