package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for authctl.
//
// Fields:
//   - ServerURL: base URL of the auth server, e.g. http://localhost:5000.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string        `env:"AUTHCTL_SERVER_URL"`
	RequestTimeout time.Duration `env:"AUTHCTL_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
