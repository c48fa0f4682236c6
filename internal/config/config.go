// Package config provides configuration loading and validation for the
// factcheck agent. A Config is built once at process start and injected
// into the components that need it; nothing reads the environment ad hoc
// at call time.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults applied when neither the environment nor a config file sets a value.
const (
	DefaultPort            = 8080
	DefaultFetchTimeout    = 10 * time.Second
	DefaultProviderTimeout = 60 * time.Second
)

// Config holds all runtime configuration for the agent.
type Config struct {
	// Provider credentials
	PerplexityAPIKey string `json:"perplexity_api_key,omitempty"`
	AnthropicAPIKey  string `json:"anthropic_api_key,omitempty"`
	GeminiAPIKey     string `json:"gemini_api_key,omitempty"` // optional third fallback

	// Behavior
	Port               int  `json:"port,omitempty"`
	FetchTimeoutSec    int  `json:"fetch_timeout_sec,omitempty"`
	ProviderTimeoutSec int  `json:"provider_timeout_sec,omitempty"`
	UseBrowser         bool `json:"use_browser,omitempty"` // headless browser for SPA article pages
	Verbose            bool `json:"verbose,omitempty"`
}

// FromEnv builds a Config from process environment variables.
func FromEnv() *Config {
	cfg := &Config{
		PerplexityAPIKey: os.Getenv("PERPLEXITY_API_KEY"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.PerplexityAPIKey == "" && c.AnthropicAPIKey == "" && c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: at least one provider API key is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 0-65535")
	}
	if c.FetchTimeoutSec < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_sec' must be non-negative")
	}
	if c.ProviderTimeoutSec < 0 {
		return fmt.Errorf("config error: 'provider_timeout_sec' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for env/flag values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.PerplexityAPIKey == "" {
		result.PerplexityAPIKey = defaults.PerplexityAPIKey
	}
	if result.AnthropicAPIKey == "" {
		result.AnthropicAPIKey = defaults.AnthropicAPIKey
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.FetchTimeoutSec == 0 {
		result.FetchTimeoutSec = defaults.FetchTimeoutSec
	}
	if result.ProviderTimeoutSec == 0 {
		result.ProviderTimeoutSec = defaults.ProviderTimeoutSec
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (flags should always win for bools)

	return result
}

// FetchTimeout returns the article fetch budget.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSec > 0 {
		return time.Duration(c.FetchTimeoutSec) * time.Second
	}
	return DefaultFetchTimeout
}

// ProviderTimeout returns the per-provider call budget.
func (c *Config) ProviderTimeout() time.Duration {
	if c.ProviderTimeoutSec > 0 {
		return time.Duration(c.ProviderTimeoutSec) * time.Second
	}
	return DefaultProviderTimeout
}

// ListenPort returns the HTTP listen port.
func (c *Config) ListenPort() int {
	if c.Port > 0 {
		return c.Port
	}
	return DefaultPort
}
