package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the central typed configuration struct. It implements the
// container's Component capability so the kernel can register it and let
// other components declare a dependency on it.
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Logging LoggingConfig
}

// ComponentName implements container.Component.
func (c *Config) ComponentName() string { return "config" }

// AppConfig holds application identity settings.
type AppConfig struct {
	Name        string
	Version     string
	Debug       bool
	Description string
}

// ServerConfig holds the bind address of the diagnostics endpoint.
type ServerConfig struct {
	Host string
	Port int
}

// LoggingConfig selects log level and output encoding.
type LoggingConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console
}

// ── Manager ──────────────────────────────────────────────────────────────────

// Manager loads layered configuration:
//
//  1. .env files (non-fatal when absent)
//  2. application.{toml,yaml,yml,json}
//  3. application-{profile}.{toml,yaml,yml,json} overlay
//  4. environment variables with the configured prefix
//     (SPRING_SERVER_PORT overrides server.port)
//
// Later layers win. The profile defaults to $PROFILE or "dev".
type Manager struct {
	v         *viper.Viper
	path      string
	profile   string
	envPrefix string
	envFiles  []string
}

// Option customises a Manager before it loads anything.
type Option func(*Manager)

// WithPath sets the directory searched for configuration files.
func WithPath(dir string) Option { return func(m *Manager) { m.path = dir } }

// WithProfile overrides the active profile.
func WithProfile(profile string) Option { return func(m *Manager) { m.profile = profile } }

// WithEnvPrefix overrides the environment variable prefix (default "SPRING").
func WithEnvPrefix(prefix string) Option { return func(m *Manager) { m.envPrefix = prefix } }

// WithEnvFiles sets the .env files loaded before anything else.
func WithEnvFiles(files ...string) Option { return func(m *Manager) { m.envFiles = files } }

// NewManager creates a manager and loads all configuration layers.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		v:         viper.New(),
		path:      ".",
		profile:   os.Getenv("PROFILE"),
		envPrefix: "SPRING",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.profile == "" {
		m.profile = "dev"
	}

	// Non-fatal: .env may not exist in production.
	if len(m.envFiles) > 0 {
		_ = godotenv.Load(m.envFiles...)
	} else {
		_ = godotenv.Load()
	}

	m.setDefaults()

	m.v.AddConfigPath(m.path)
	m.v.SetConfigName("application")
	if err := m.v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("read base configuration: %w", err)
	}

	m.v.SetConfigName("application-" + m.profile)
	if err := m.v.MergeInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("merge %s profile configuration: %w", m.profile, err)
	}

	m.v.SetEnvPrefix(m.envPrefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	return m, nil
}

func (m *Manager) setDefaults() {
	m.v.SetDefault("app.name", "go-spring application")
	m.v.SetDefault("app.version", "0.1.0")
	m.v.SetDefault("app.debug", false)
	m.v.SetDefault("app.description", "")
	m.v.SetDefault("server.host", "0.0.0.0")
	m.v.SetDefault("server.port", 8080)
	m.v.SetDefault("logging.level", "info")
	m.v.SetDefault("logging.format", "console")
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

// Profile returns the active profile name.
func (m *Manager) Profile() string { return m.profile }

// Config materialises and validates the typed configuration.
func (m *Manager) Config() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Section deserialises one dotted key ("server", "logging", ...) into out.
func (m *Manager) Section(key string, out any) error {
	if err := m.v.UnmarshalKey(key, out); err != nil {
		return fmt.Errorf("unmarshal section %q: %w", key, err)
	}
	return nil
}

// ContainsKey reports whether the key is set by any layer.
func (m *Manager) ContainsKey(key string) bool { return m.v.IsSet(key) }

// GetString returns a string value, falling back when the key is unset.
func (m *Manager) GetString(key, fallback string) string {
	if m.v.IsSet(key) {
		return m.v.GetString(key)
	}
	return fallback
}

// GetInt returns an int value, falling back when the key is unset.
func (m *Manager) GetInt(key string, fallback int) int {
	if m.v.IsSet(key) {
		return m.v.GetInt(key)
	}
	return fallback
}

// GetBool returns a bool value, falling back when the key is unset.
func (m *Manager) GetBool(key string, fallback bool) bool {
	if m.v.IsSet(key) {
		return m.v.GetBool(key)
	}
	return fallback
}
