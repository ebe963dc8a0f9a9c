package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meur/pinboard/internal/masonry"
	"gopkg.in/yaml.v3"
)

// Config holds all pinboard configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Layout  LayoutConfig  `yaml:"layout"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            string   `yaml:"port"`
	StaticDir       string   `yaml:"static_dir"` // empty = API only
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
}

// StorageConfig selects the database backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres
	Path   string `yaml:"path"`   // sqlite file
	DSN    string `yaml:"dsn"`    // postgres connection string
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// LayoutConfig configures masonry breakpoints.
type LayoutConfig struct {
	Breakpoints []masonry.Breakpoint `yaml:"breakpoints"`
	MaxColumns  int                  `yaml:"max_columns"`
}

// ValidDrivers lists the supported storage drivers.
var ValidDrivers = []string{"sqlite", "postgres"}

// DefaultConfig returns a config that runs locally with SQLite.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			AllowedOrigins:  []string{"http://localhost:*", "https://*.pinboard.app"},
			ShutdownTimeout: "10s",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   "./pinboard.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Layout: LayoutConfig{
			Breakpoints: masonry.DefaultBreakpoints(),
			MaxColumns:  12,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		c.Server.StaticDir = dir
	}
	if driver := os.Getenv("PINBOARD_STORAGE_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		c.Storage.Path = path
	}
	// A Postgres URL implies the postgres driver unless one was set explicitly
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Storage.DSN = dsn
		if os.Getenv("PINBOARD_STORAGE_DRIVER") == "" {
			c.Storage.Driver = "postgres"
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Server.Port, ":") {
		return c.Server.Port
	}
	return ":" + c.Server.Port
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	validDriver := false
	for _, d := range ValidDrivers {
		if c.Storage.Driver == d {
			validDriver = true
			break
		}
	}
	if !validDriver {
		return fmt.Errorf("invalid storage driver: %s (valid: %v)", c.Storage.Driver, ValidDrivers)
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return fmt.Errorf("storage path is required for sqlite")
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return fmt.Errorf("storage dsn is required for postgres (set DATABASE_URL)")
	}

	if c.Layout.MaxColumns < 1 {
		return fmt.Errorf("layout max_columns must be >= 1")
	}
	if err := masonry.ValidateBreakpoints(c.Layout.Breakpoints); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	for _, bp := range c.Layout.Breakpoints {
		if bp.Columns > c.Layout.MaxColumns {
			return fmt.Errorf("invalid layout: breakpoint %q exceeds max_columns %d", bp.Name, c.Layout.MaxColumns)
		}
	}

	return nil
}
