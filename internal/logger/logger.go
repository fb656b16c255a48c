// Package logger builds the zap loggers used by the client and the stub
// server.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger holds the process logger. Log is a no-op logger until Init
// succeeds.
type Logger struct {
	Log *zap.Logger
}

func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces Log with a production JSON logger writing to stderr at the
// given level. Level names are case-insensitive.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
