package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesToLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cart.log")
	logger, err := newLogger(true, logFile)
	require.NoError(t, err)
	logger.Debugw("developing node", "node", "1")
	_ = logger.Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "DEBUG")
	assert.Contains(t, string(content), "developing node")
}

func TestNewLoggerLevel(t *testing.T) {
	logger, err := newLogger(false, "")
	require.NoError(t, err)
	assert.False(t, logger.Desugar().Core().Enabled(-1))
	assert.True(t, logger.Desugar().Core().Enabled(0))
}
