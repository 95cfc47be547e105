// Package config loads the service configuration from the environment.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Snapshot store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the full service configuration
type Config struct {
	Port int `env:"RPG_LOADOUT_PORT" envDefault:"50051"`

	// CatalogDir holds the item, race and class JSON files; empty serves an
	// empty catalog
	CatalogDir string `env:"RPG_LOADOUT_CATALOG_DIR"`
	// LayoutFile is an HCL slot layout; empty uses the built-in layout
	LayoutFile string `env:"RPG_LOADOUT_LAYOUT_FILE"`

	Store      string   `env:"RPG_LOADOUT_STORE"       envDefault:"memory"`
	RedisAddrs []string `env:"RPG_LOADOUT_REDIS_ADDRS" envDefault:"localhost:6379" envSeparator:","`
	RedisTLS   bool     `env:"RPG_LOADOUT_REDIS_TLS"`
	SQLitePath string   `env:"RPG_LOADOUT_SQLITE_PATH" envDefault:"loadout.db"`

	LogLevel        string        `env:"RPG_LOADOUT_LOG_LEVEL"        envDefault:"info"`
	ShutdownTimeout time.Duration `env:"RPG_LOADOUT_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// Validate checks the values that cannot be caught by parsing
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("Port", c.Port, 1, 65535, vb)
	errors.ValidateEnum("Store", c.Store, []string{StoreMemory, StoreRedis, StoreSQLite}, vb)
	if c.Store == StoreRedis && len(c.RedisAddrs) == 0 {
		vb.Field("RedisAddrs", "is required for the redis store")
	}
	if c.Store == StoreSQLite {
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Fieldf("LogLevel", "unknown level %q", c.LogLevel)
	}
	errors.ValidatePositive("ShutdownTimeout", c.ShutdownTimeout, vb)

	return vb.Build()
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(name string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
