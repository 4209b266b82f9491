package config

import (
	"errors"
	"fmt"
)

// ErrValidation is the kind wrapped by every configuration validation
// failure.
var ErrValidation = errors.New("invalid configuration")

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "console": true}
)

// Validate checks the typed configuration for values the framework cannot
// work with. Called by Manager.Config, and usable standalone on hand-built
// configs.
func Validate(cfg *Config) error {
	if cfg.App.Name == "" {
		return fmt.Errorf("%w: app.name must not be empty", ErrValidation)
	}
	if cfg.Server.Host == "" {
		return fmt.Errorf("%w: server.host must not be empty", ErrValidation)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range 1-65535", ErrValidation, cfg.Server.Port)
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("%w: logging.level %q (want debug|info|warn|error)", ErrValidation, cfg.Logging.Level)
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("%w: logging.format %q (want json|console)", ErrValidation, cfg.Logging.Format)
	}
	return nil
}
