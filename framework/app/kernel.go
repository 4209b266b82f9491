// Package app wires configuration, logging, the component container and the
// service providers into one bootable application kernel.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-spring/framework/config"
	"github.com/km-arc/go-spring/framework/container"
	"github.com/km-arc/go-spring/framework/logging"
	"github.com/km-arc/go-spring/framework/providers"
	"github.com/km-arc/go-spring/framework/web"
)

// Application is the top-level kernel. It embeds the container so user code
// can call the typed registration helpers directly on it, and carries the
// provider registry plus the framework's bootstrap services.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	cfg *config.Config
	log *logging.Logger
}

// New loads configuration, builds the logger, creates the container and
// registers the framework's own providers. User providers come next, via
// Register, followed by Boot or Run.
func New(opts ...config.Option) (*Application, error) {
	manager, err := config.NewManager(opts...)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	cfg, err := manager.Config()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	c := container.New()
	c.SetLogger(logger.Logger)
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
		cfg:       cfg,
		log:       logger,
	}

	if err := registry.Register(&providers.ConfigServiceProvider{Config: cfg}); err != nil {
		return nil, err
	}
	if err := registry.Register(&providers.LoggingServiceProvider{Logger: logger}); err != nil {
		return nil, err
	}
	return app, nil
}

// Register adds a user service provider.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot auto-wires the container and runs every provider's Boot phase.
// Idempotent: once booted, further calls are no-ops.
func (a *Application) Boot() error {
	if a.Providers.Booted() {
		return nil
	}
	if err := a.AutoWire(); err != nil {
		return fmt.Errorf("auto-wire: %w", err)
	}

	order, err := a.InitializationOrder()
	if err != nil {
		return err
	}
	names := make([]string, len(order))
	for i, id := range order {
		names[i] = id.ShortName()
	}
	a.log.Info("container auto-wired",
		zap.Int("components", len(order)),
		zap.Strings("initialization_order", names))

	return a.Providers.Boot()
}

// Run boots the application and blocks until SIGINT or SIGTERM. When debug
// mode is on, the container diagnostics endpoint is served on the configured
// address.
func (a *Application) Run() error {
	if err := a.Boot(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	serveErr := make(chan error, 1)
	if a.cfg.App.Debug {
		addr := net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
		srv = &http.Server{
			Addr:    addr,
			Handler: web.NewRouter(a.Container, a.log),
		}
		a.log.Info("diagnostics endpoint listening", zap.String("addr", addr))
		go func() {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()
	}

	a.log.Info("application started",
		zap.String("name", a.cfg.App.Name),
		zap.String("version", a.cfg.App.Version))

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("diagnostics server: %w", err)
	}

	a.log.Info("shutting down")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown diagnostics server: %w", err)
		}
	}
	return nil
}

// Config returns the loaded application configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *logging.Logger { return a.log }

// IsDebug reports whether the application runs in debug mode.
func (a *Application) IsDebug() bool { return a.cfg.App.Debug }

// Version returns the configured application version.
func (a *Application) Version() string { return a.cfg.App.Version }
