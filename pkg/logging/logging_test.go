package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		verbosity int
		enabled   zapcore.Level
		disabled  zapcore.Level
	}{
		{Quiet, zapcore.WarnLevel, zapcore.InfoLevel},
		{Verbose, zapcore.InfoLevel, zapcore.DebugLevel},
		{Debug, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{5, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}

	for _, tt := range tests {
		logger, err := New(tt.verbosity)
		require.NoError(t, err)

		core := logger.Core()
		assert.True(t, core.Enabled(tt.enabled), "verbosity %d should log %s", tt.verbosity, tt.enabled)
		assert.False(t, core.Enabled(tt.disabled), "verbosity %d should not log %s", tt.verbosity, tt.disabled)
		assert.Equal(t, tt.enabled, Level(tt.verbosity))
	}
}
