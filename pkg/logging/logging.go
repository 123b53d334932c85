// Package logging creates the zap logger shared by the command line tools.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels selected by the -v and -vv flags
const (
	Quiet   = 0
	Verbose = 1
	Debug   = 2
)

// Level returns the minimum level logged at the given verbosity
func Level(verbosity int) zapcore.Level {
	switch {
	case verbosity >= Debug:
		return zapcore.DebugLevel
	case verbosity == Verbose:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}

// New builds a logger for the given verbosity: development output for
// Debug, production output at Info or Warn otherwise.
func New(verbosity int) (*zap.Logger, error) {
	if verbosity >= Debug {
		return zap.NewDevelopment()
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(Level(verbosity))
	return config.Build()
}
