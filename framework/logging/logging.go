// Package logging builds the framework's zap logger from configuration.
// It is initialised independently of the container; the kernel registers
// the result as a singleton component for convenience only.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-spring/framework/config"
)

// Logger wraps *zap.Logger so it satisfies the container's Component
// capability.
type Logger struct {
	*zap.Logger
}

// ComponentName implements container.Component.
func (l *Logger) ComponentName() string { return "logger" }

// New builds a logger from the logging configuration.
func New(cfg config.LoggingConfig) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q (want json|console)", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{Logger: log}, nil
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}
