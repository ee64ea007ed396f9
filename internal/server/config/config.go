// Package config handles configuration for the auth server, layered as
// defaults, an optional JSON file, environment variables and finally
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Deployment modes. Production turns on Secure cookies and JSON logging.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON API.
//   - EndpointAddrGRPC: bind address for the gRPC health service; empty disables it.
//   - DatabaseDSN: store connection string; the scheme picks the backend
//     (mongodb://, postgres://, memory://).
//   - DatabaseName: Mongo database holding the users collection.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - Mode: development or production (APP_ENV, falling back to NODE_ENV).
//   - ClientURL: base URL of the web client, used to build reset links.
//   - SessionValidityDuration: lifetime of both the session token and its cookie.
//   - VerificationTokenValidityDuration / ResetTokenValidityDuration: single-use code lifetimes.
//   - BcryptCost: work factor for password hashes.
//   - UniformLoginErrors: report unknown email and wrong password identically.
//   - SMTP*/MailFrom: outgoing mail; empty SMTPHost logs emails instead of sending.
type Config struct {
	EndpointAddrHTTP                  string        `env:"HTTP_ADDR"`
	EndpointAddrGRPC                  string        `env:"GRPC_ADDR"`
	DatabaseDSN                       string        `env:"MONGO_URI"`
	DatabaseName                      string        `env:"DB_NAME"`
	SecretKey                         string        `env:"JWT_SECRET"`
	Mode                              string        `env:"APP_ENV"`
	ClientURL                         string        `env:"CLIENT_URL"`
	SessionValidityDuration           time.Duration `env:"SESSION_TTL"`
	VerificationTokenValidityDuration time.Duration `env:"VERIFICATION_TTL"`
	ResetTokenValidityDuration        time.Duration `env:"RESET_TOKEN_TTL"`
	BcryptCost                        int           `env:"BCRYPT_COST"`
	UniformLoginErrors                bool          `env:"LOGIN_UNIFORM_ERRORS"`
	SMTPHost                          string        `env:"SMTP_HOST"`
	SMTPPort                          int           `env:"SMTP_PORT"`
	SMTPUsername                      string        `env:"SMTP_USERNAME"`
	SMTPPassword                      string        `env:"SMTP_PASSWORD"`
	MailFrom                          string        `env:"MAIL_FROM"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is insecure and Validate rejects it in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.EndpointAddrGRPC = ""
	c.DatabaseDSN = "mongodb://localhost:27017"
	c.DatabaseName = "authd"
	c.SecretKey = DefaultSecretKey
	c.Mode = ModeDevelopment
	c.ClientURL = "http://localhost:5173"
	c.SessionValidityDuration = 24 * time.Hour
	c.VerificationTokenValidityDuration = 24 * time.Hour
	c.ResetTokenValidityDuration = 1 * time.Hour
	c.BcryptCost = 10
	c.UniformLoginErrors = false
	c.SMTPPort = 587
	c.MailFrom = "no-reply@authd.local"
}

// DefaultSecretKey is the development signing secret.
const DefaultSecretKey = "secretKey"

// IsProduction reports whether Mode is production.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}

// Validate checks settings that would make the server unsafe or unusable.
func (c *Config) Validate() error {
	var errs []error

	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.IsProduction() && c.SecretKey == DefaultSecretKey {
		errs = append(errs, errors.New("default secret key used in production"))
	}
	if c.IsProduction() && c.SMTPHost == "" {
		// the log notifier would write verification codes and reset links to the log
		errs = append(errs, errors.New("smtp host is required in production"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is empty"))
	}
	if c.SessionValidityDuration <= 0 {
		errs = append(errs, errors.New("session validity must be positive"))
	}
	if c.VerificationTokenValidityDuration <= 0 || c.ResetTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity must be positive"))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
