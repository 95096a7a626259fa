package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	defaultLogLevel      = "info"
	defaultDisputePolicy = "reject"

	logLevelEnvVar      = "LOG_LEVEL"
	disputePolicyEnvVar = "LEDGER_DISPUTE_POLICY"
)

// Config captures runtime configuration loaded from environment variables.
type Config struct {
	LogLevel string
	// DisputePolicy is "reject" or "allow"; the command parses it.
	DisputePolicy string
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:      strings.ToLower(getEnv(logLevelEnvVar, defaultLogLevel)),
		DisputePolicy: strings.ToLower(getEnv(disputePolicyEnvVar, defaultDisputePolicy)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that may have been overridden after Load.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
