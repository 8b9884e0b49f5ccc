package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServerConfig_GetAddress(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ServerConfig
		expected string
	}{
		{name: "port only with colon", cfg: ServerConfig{Port: ":8080"}, expected: ":8080"},
		{name: "port only without colon", cfg: ServerConfig{Port: "8080"}, expected: ":8080"},
		{name: "host and port", cfg: ServerConfig{Host: "127.0.0.1", Port: ":9000"}, expected: "127.0.0.1:9000"},
		{name: "ipv6 host", cfg: ServerConfig{Host: "::1", Port: "8080"}, expected: "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.GetAddress())
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	base := ServerConfig{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
	}
	assert.NoError(t, base.Validate())

	noRead := base
	noRead.ReadTimeout = 0
	assert.EqualError(t, noRead.Validate(), "ReadTimeout must be greater than 0")

	noWrite := base
	noWrite.WriteTimeout = -time.Second
	assert.EqualError(t, noWrite.Validate(), "WriteTimeout must be greater than 0")

	noIdle := base
	noIdle.IdleTimeout = 0
	assert.EqualError(t, noIdle.Validate(), "IdleTimeout must be greater than 0")

	negativeShutdown := base
	negativeShutdown.ShutdownTimeout = -time.Second
	assert.Error(t, negativeShutdown.Validate())
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("SERVER_WRITE_TIMEOUT", "")
	t.Setenv("SERVER_IDLE_TIMEOUT", "bogus")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "1s")

	cfg := LoadServerConfigFromEnv()
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "0.0.0.0:7070", cfg.GetAddress())
}
