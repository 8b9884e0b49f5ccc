package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key read by LoadFromEnv so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "LOG_SQL_LEVEL",
		"PAGE_DEFAULT_SIZE", "PAGE_MAX_SIZE", "GIN_MODE", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Logger:  LoggerConfig{Level: "info", Format: "json"},
		Paging:  PagingConfig{DefaultSize: 20, MaxSize: 100},
		GinMode: "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "warn", cfg.Logger.SQLLevel)
	assert.Equal(t, 20, cfg.Paging.DefaultSize)
	assert.Equal(t, 100, cfg.Paging.MaxSize)
	assert.Equal(t, "release", cfg.GinMode)
	assert.True(t, cfg.MetricsEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("PAGE_DEFAULT_SIZE", "5")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, 5, cfg.Paging.DefaultSize)
	assert.False(t, cfg.MetricsEnabled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{
			name:    "invalid server config",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "server config validation failed",
		},
		{
			name:    "invalid logger config",
			mutate:  func(c *Config) { c.Logger.Level = "trace" },
			wantErr: "logger config validation failed",
		},
		{
			name:    "invalid paging config",
			mutate:  func(c *Config) { c.Paging.MaxSize = 1 },
			wantErr: "paging config validation failed",
		},
		{
			name:    "invalid gin mode",
			mutate:  func(c *Config) { c.GinMode = "production" },
			wantErr: "invalid GIN_MODE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPagingConfig_Validate(t *testing.T) {
	assert.NoError(t, PagingConfig{DefaultSize: 20, MaxSize: 20}.Validate())
	assert.Error(t, PagingConfig{DefaultSize: 0, MaxSize: 20}.Validate())
	assert.Error(t, PagingConfig{DefaultSize: 30, MaxSize: 20}.Validate())
}
