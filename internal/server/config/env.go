package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotenvFiles are loaded, if present, before the environment is parsed.
// Variables already set in the process environment win over the file.
var dotenvFiles = []string{".env"}

// legacyModeVar sets Mode when APP_ENV is unset.
const legacyModeVar = "NODE_ENV"

// parseEnv overlays Config fields that have their variable set (see the env
// tags on Config). Unset variables leave the current value untouched.
func parseEnv(config *Config) error {
	for _, f := range dotenvFiles {
		// a missing .env is the normal case outside local development
		_ = godotenv.Load(f)
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if _, ok := os.LookupEnv("APP_ENV"); !ok {
		if mode, ok := os.LookupEnv(legacyModeVar); ok && mode != "" {
			config.Mode = mode
		}
	}
	return nil
}
