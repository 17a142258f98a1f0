package server

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the autocomplete server.
type Config struct {
	// Server
	Addr     string `env:"GHOSTTEXTD_ADDR" envDefault:"127.0.0.1:8000"`
	LogLevel string `env:"GHOSTTEXTD_LOG_LEVEL" envDefault:"info"`

	// Backend: any OpenAI-compatible completions API.
	BaseURL string `env:"GHOSTTEXTD_BASE_URL" envDefault:"http://127.0.0.1:11434/v1"`
	APIKey  string `env:"GHOSTTEXTD_API_KEY"`
	Model   string `env:"GHOSTTEXTD_MODEL" envDefault:"gpt2-java"`

	// Sampling
	MaxTokens   int     `env:"GHOSTTEXTD_MAX_TOKENS" envDefault:"128"`
	Temperature float32 `env:"GHOSTTEXTD_TEMPERATURE" envDefault:"0.8"`
	TopP        float32 `env:"GHOSTTEXTD_TOP_P" envDefault:"0.95"`
}

// LoadConfig reads configuration from the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

// LoadConfigFrom reads configuration from the given variables instead of the
// process environment.
func LoadConfigFrom(environment map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environment})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("GHOSTTEXTD_MAX_TOKENS must be positive, got %d", cfg.MaxTokens)
	}
	return cfg, nil
}
