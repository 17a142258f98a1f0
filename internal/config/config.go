// Package config provides configuration management for the ghosttext editor.
// It handles loading the YAML config file, filling in defaults, and mapping
// values onto the components that consume them.
package config

import (
	"fmt"
	"time"

	"github.com/atinylittleshell/ghosttext/internal/autocomplete"
	"github.com/atinylittleshell/ghosttext/internal/host"
	"github.com/atinylittleshell/ghosttext/internal/suggest"
)

// GhostConfig controls how suggestions are drawn.
type GhostConfig struct {
	// Color is a terminal color for ghost text (ANSI index or hex).
	Color string `yaml:"color"`

	// Italic renders ghost text in italics.
	Italic bool `yaml:"italic"`

	// Faint renders ghost text at reduced intensity.
	Faint bool `yaml:"faint"`
}

// Config holds all editor configuration.
type Config struct {
	// Endpoint is the autocomplete server URL.
	Endpoint string `yaml:"endpoint"`

	// Debounce is the quiet period after typing before a request is sent.
	Debounce time.Duration `yaml:"debounce"`

	// RequestTimeout bounds each autocomplete request. Zero means no timeout
	// beyond the transport default.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// LogLevel controls logging verbosity.
	LogLevel string `yaml:"log_level"`

	// Ghost controls suggestion rendering.
	Ghost GhostConfig `yaml:"ghost"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:       autocomplete.DefaultEndpoint,
		Debounce:       suggest.DefaultDebounceDelay,
		RequestTimeout: 0,
		LogLevel:       "info",
		Ghost: GhostConfig{
			Color:  suggest.DefaultOverlayStyle.Color,
			Italic: suggest.DefaultOverlayStyle.Italic,
			Faint:  suggest.DefaultOverlayStyle.Faint,
		},
	}
}

// OverlayStyle returns the ghost settings as an overlay style.
func (c *Config) OverlayStyle() host.OverlayStyle {
	return host.OverlayStyle{
		Color:  c.Ghost.Color,
		Italic: c.Ghost.Italic,
		Faint:  c.Ghost.Faint,
	}
}

// ClientConfig returns the autocomplete client settings.
func (c *Config) ClientConfig() autocomplete.ClientConfig {
	return autocomplete.ClientConfig{
		Endpoint: c.Endpoint,
		Timeout:  c.RequestTimeout,
	}
}

// ApplyOverrides replaces values set on the command line. Empty or zero
// arguments leave the current value.
func (c *Config) ApplyOverrides(endpoint string, debounce time.Duration) error {
	if endpoint != "" {
		if err := validateEndpoint(endpoint); err != nil {
			return err
		}
		c.Endpoint = endpoint
	}
	if debounce < 0 {
		return fmt.Errorf("debounce must be positive, got %s", debounce)
	}
	if debounce > 0 {
		c.Debounce = debounce
	}
	return nil
}
