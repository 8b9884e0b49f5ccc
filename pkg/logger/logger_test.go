package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	appConfig "github.com/festy23/querystudy/internal/config"
)

func TestNew(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_OUTPUT", "stdout")

	logger, err := New()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name         string
		cfg          appConfig.LoggerConfig
		enabledLevel zapcore.Level
		mutedLevel   zapcore.Level
	}{
		{
			name:         "production json info",
			cfg:          appConfig.LoggerConfig{Level: "info", Format: "json", Output: "stdout"},
			enabledLevel: zapcore.InfoLevel,
			mutedLevel:   zapcore.DebugLevel,
		},
		{
			name:         "warn level on stderr",
			cfg:          appConfig.LoggerConfig{Level: "warn", Format: "json", Output: "stderr"},
			enabledLevel: zapcore.WarnLevel,
			mutedLevel:   zapcore.InfoLevel,
		},
		{
			name:         "error level console",
			cfg:          appConfig.LoggerConfig{Level: "error", Format: "console", Output: "stdout"},
			enabledLevel: zapcore.ErrorLevel,
			mutedLevel:   zapcore.WarnLevel,
		},
		{
			name:         "invalid level defaults to info",
			cfg:          appConfig.LoggerConfig{Level: "invalid-level", Format: "json", Output: "stdout"},
			enabledLevel: zapcore.InfoLevel,
			mutedLevel:   zapcore.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithConfig(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)

			core := logger.Desugar().Core()
			assert.True(t, core.Enabled(tt.enabledLevel))
			assert.False(t, core.Enabled(tt.mutedLevel))
		})
	}
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewWithConfig(appConfig.LoggerConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Infow("member saved", "member_id", 1)
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"member_id":1`)
}
