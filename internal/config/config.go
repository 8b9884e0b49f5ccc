// Package config loads application configuration from the environment.
package config

import "fmt"

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Paging holds defaults for paged member search.
	Paging PagingConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
	// MetricsEnabled exposes /metrics and records request metrics.
	MetricsEnabled bool
}

var validGinModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:         LoadServerConfigFromEnv(),
		Logger:         LoadLoggerConfigFromEnv(),
		Paging:         LoadPagingConfigFromEnv(),
		GinMode:        GetEnv("GIN_MODE", "release"),
		MetricsEnabled: GetEnvBool("METRICS_ENABLED", true),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}
	if err := c.Paging.Validate(); err != nil {
		return fmt.Errorf("paging config validation failed: %w", err)
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}
	return nil
}
