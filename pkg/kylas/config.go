// Package kylas is the HTTP client for the Kylas CRM REST API. It covers the
// lead endpoints the tool surface needs: field metadata, user and catalog
// lookups, pipelines, lead CRUD, and jsonRule search. All methods return
// *APIError on failure so callers can surface status and body to the agent.
package kylas

import (
	"os"
	"strings"
)

const (
	// DefaultBaseURL is the production Kylas API root.
	DefaultBaseURL = "https://api.kylas.io/v1"
	// DefaultTimeoutSecs bounds each API call.
	DefaultTimeoutSecs = 30
)

// Config holds connection settings for the Kylas API.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

// WithDefaults fills unset fields with production defaults. Safe on nil.
func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

// ApplyEnvDefaults fills empty config fields from environment variables,
// then applies defaults. File values win over the environment.
func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.BaseURL = envOr(cfg.BaseURL, os.Getenv("KYLAS_BASE_URL"))
	cfg.APIKey = envOr(cfg.APIKey, os.Getenv("KYLAS_API_KEY"))
	return cfg.WithDefaults()
}

// ConfigFromEnv builds a config from KYLAS_BASE_URL and KYLAS_API_KEY alone.
func ConfigFromEnv() *Config {
	return ApplyEnvDefaults(&Config{})
}

func envOr(existing, value string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	return strings.TrimSpace(value)
}
