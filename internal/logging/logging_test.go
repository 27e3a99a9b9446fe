package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.ErrorLevel))

	loud, err := New(true)
	require.NoError(t, err)
	assert.True(t, loud.Core().Enabled(zapcore.DebugLevel))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanmac.log")

	logger, err := NewFile(path, false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("Scan complete", zap.Int("apps", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"Scan complete"`)
	assert.Contains(t, out, `"apps":3`)
	assert.False(t, strings.Contains(out, "hidden"))

	nop, err := NewFile("", true)
	require.NoError(t, err)
	assert.False(t, nop.Core().Enabled(zapcore.ErrorLevel))
}
