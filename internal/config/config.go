// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Provide defaults for every optional setting.
//   - Accept the legacy PORT and MONGODB_URI variables.
//   - Map BOOKSTORE_ prefixed env vars into nested config structs.
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix every application variable carries.
//
// A double underscore marks one level of nesting:
//
//	BOOKSTORE_SERVER__READ_TIMEOUT           -> server.read_timeout
//	BOOKSTORE_DATABASE__URI                  -> database.uri
//	BOOKSTORE_OBSERVABILITY__LOGGING__LEVEL  -> observability.logging.level
const EnvPrefix = "BOOKSTORE_"

// ServiceName is the name used to tag logs and APM data.
const ServiceName = "book-inventory"

// Config is the root configuration object for the application.
//
// Observability is a pointer so callers building a Config by hand can leave
// it out; LoadConfig always fills it from the defaults.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig contains the document store connection settings.
//
// URI is the full MongoDB connection string (mongodb:// or mongodb+srv://).
type DatabaseConfig struct {
	URI            string        `koanf:"uri" validate:"required"`
	Name           string        `koanf:"name" validate:"required"`
	Collection     string        `koanf:"collection" validate:"required"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"min=1s"`
}

// defaults are loaded first so every other source can override them.
func defaults() map[string]interface{} {
	obs := DefaultObservabilityConfig()

	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 "5000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"database.name":               "BookInventory",
		"database.collection":         "books",
		"database.connect_timeout":    "10s",

		"observability.logging.level":                         obs.Logging.Level,
		"observability.logging.format":                        obs.Logging.Format,
		"observability.logging.slow_query_threshold":          obs.Logging.SlowQueryThreshold.String(),
		"observability.new_relic.license_key":                 obs.NewRelic.LicenseKey,
		"observability.new_relic.app_log_forwarding_enabled":  obs.NewRelic.AppLogForwardingEnabled,
		"observability.new_relic.distributed_tracing_enabled": obs.NewRelic.DistributedTracingEnabled,
		"observability.new_relic.debug_logging":               obs.NewRelic.DebugLogging,
		"observability.health_checks.enabled":                 obs.HealthChecks.Enabled,
		"observability.health_checks.timeout":                 obs.HealthChecks.Timeout.String(),
	}
}

// legacyKeys maps un-prefixed variables onto config keys.
var legacyKeys = map[string]string{
	"PORT":        "server.port",
	"MONGODB_URI": "database.uri",
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it, and returns the resulting config.
//
// Sources, later wins:
//   - built-in defaults
//   - PORT and MONGODB_URI
//   - BOOKSTORE_ prefixed variables
//
// The observability block is part of the defaults, so it is never nil after
// a successful load.
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load default config")
	}

	// Returning "" from the callback makes the provider skip the variable,
	// so only the legacy names are picked up here.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyKeys[s]
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load legacy env variables")
	}

	err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal main config")
	}

	// Service name and environment always follow the primary config so
	// logs and traces stay consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid observability config")
	}

	return mainConfig, nil
}

// envKey turns BOOKSTORE_SECTION__SOME_KEY into section.some_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// IsLocal reports whether the app runs in the local developer environment.
// Store command logging is only switched on there.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
