package providers

import (
	"github.com/km-arc/go-spring/framework/config"
	"github.com/km-arc/go-spring/framework/container"
	"github.com/km-arc/go-spring/framework/logging"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider registers the already-loaded typed configuration as
// a singleton component named "config".
//
// The configuration subsystem deserialises and validates before the
// container ever sees it; the container only stores the result.
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(c *container.Container) error {
	return container.RegisterSingletonNamed(c, p.Config, "config")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the bootstrap logger as a singleton
// component named "logger", with a declared dependency on the configuration
// it was built from.
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *logging.Logger
}

func (p *LoggingServiceProvider) Register(c *container.Container) error {
	err := container.RegisterSingletonNamed(c, p.Logger, "logger")
	if err != nil {
		return err
	}
	c.AddDependency(container.TypeOf[*logging.Logger](), container.TypeOf[*config.Config]())
	return nil
}
