package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoplist.log")
	logger, err := New(Config{Level: "info", Outputs: []string{path}})
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "nope"})
	assert.Error(t, err)
}

func TestForTerminalUI(t *testing.T) {
	logger, err := ForTerminalUI(Config{Outputs: []string{"stderr"}})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel), "terminal-only sinks become a no-op logger")

	path := filepath.Join(t.TempDir(), "tui.log")
	logger, err = ForTerminalUI(Config{Outputs: []string{"stderr", path}})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
