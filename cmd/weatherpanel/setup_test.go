package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/muurk/weatherpanel/internal/config"
	"github.com/muurk/weatherpanel/internal/logging"
)

func TestInitLogging(t *testing.T) {
	t.Setenv(logging.LogLevelEnvVar, "")
	t.Cleanup(func() { logFile = "" })

	cfg := config.Default()
	require.NoError(t, initLogging(cfg, false))
	assert.False(t, logging.GetLogger().Core().Enabled(zapcore.ErrorLevel), "no level means silent")

	cfg.LogLevel = "warn"
	require.NoError(t, initLogging(cfg, false))
	core := logging.GetLogger().Core()
	assert.True(t, core.Enabled(zapcore.WarnLevel))
	assert.False(t, core.Enabled(zapcore.InfoLevel))

	// The simulator owns the terminal, so an explicit file is used as-is
	logFile = filepath.Join(t.TempDir(), "panel.log")
	require.NoError(t, initLogging(cfg, true))
	logging.Warn("written to file")
	logging.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
