package config

import (
	"fmt"
	"net/url"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and validating configuration files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a YAML file.
// Returns the configuration and any non-fatal errors encountered.
// If the file doesn't exist, returns default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("config file not found, using defaults", zap.String("path", path))
			return &LoadResult{Config: DefaultConfig(), Errors: []error{}}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromBytes(content), nil
}

// LoadFromBytes loads configuration from YAML content. Invalid content or
// values fall back to defaults and are reported in Errors.
func (l *Loader) LoadFromBytes(content []byte) *LoadResult {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	parsed := DefaultConfig()
	if err := yaml.Unmarshal(content, parsed); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		return result
	}

	l.applyValidated(parsed, result)
	return result
}

// applyValidated copies valid fields from parsed onto result.Config.
func (l *Loader) applyValidated(parsed *Config, result *LoadResult) {
	cfg := result.Config

	if err := validateEndpoint(parsed.Endpoint); err != nil {
		result.Errors = append(result.Errors, err)
	} else {
		cfg.Endpoint = parsed.Endpoint
	}

	if parsed.Debounce <= 0 {
		result.Errors = append(result.Errors, fmt.Errorf("debounce must be positive, got %s", parsed.Debounce))
	} else {
		cfg.Debounce = parsed.Debounce
	}

	if parsed.RequestTimeout < 0 {
		result.Errors = append(result.Errors, fmt.Errorf("request_timeout must not be negative, got %s", parsed.RequestTimeout))
	} else {
		cfg.RequestTimeout = parsed.RequestTimeout
	}

	if _, err := zap.ParseAtomicLevel(parsed.LogLevel); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("invalid log_level %q: %w", parsed.LogLevel, err))
	} else {
		cfg.LogLevel = parsed.LogLevel
	}

	if parsed.Ghost.Color == "" {
		result.Errors = append(result.Errors, fmt.Errorf("ghost.color must not be empty"))
	} else {
		cfg.Ghost.Color = parsed.Ghost.Color
	}
	cfg.Ghost.Italic = parsed.Ghost.Italic
	cfg.Ghost.Faint = parsed.Ghost.Faint
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be an http or https URL, got %q", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint must include a host, got %q", endpoint)
	}
	return nil
}
