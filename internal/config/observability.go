package config

import (
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}

	// defaultLogLevels applies when no level is configured.
	defaultLogLevels = map[string]string{
		"production":  "info",
		"development": "debug",
		"local":       "debug",
	}
)

// ObservabilityConfig covers logging, New Relic and the /status checks.
// ServiceName and Environment are filled in by LoadConfig.
type ObservabilityConfig struct {
	ServiceName  string             `koanf:"service_name" validate:"required"`
	Environment  string             `koanf:"environment" validate:"required"`
	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic" validate:"required"`
	HealthChecks HealthChecksConfig `koanf:"health_checks" validate:"required"`
}

// LoggingConfig selects verbosity and output format. Store commands slower
// than SlowQueryThreshold are logged at warn level.
type LoggingConfig struct {
	Level              string        `koanf:"level"`
	Format             string        `koanf:"format" validate:"required"`
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig configures the APM agent. An empty LicenseKey disables it.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the store ping behind /status.
type HealthChecksConfig struct {
	Enabled bool          `koanf:"enabled"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// DefaultObservabilityConfig returns the values LoadConfig starts from.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
		},
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
	}
}

// Validate checks the values struct tags cannot express. An empty level is
// allowed and resolved by GetLogLevel.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return errors.New("service_name is required")
	}

	if c.Logging.Level != "" {
		if err := oneOf("logging level", c.Logging.Level, logLevels); err != nil {
			return err
		}
	}

	if err := oneOf("logging format", c.Logging.Format, logFormats); err != nil {
		return err
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return errors.New("logging slow_query_threshold must be non-negative")
	}

	return nil
}

func oneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return errors.Errorf("invalid %s: %s (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}

// GetLogLevel returns the configured level, falling back to a per-environment
// default and finally to "info".
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if level, ok := defaultLogLevels[c.Environment]; ok {
		return level
	}
	return "info"
}

func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}
