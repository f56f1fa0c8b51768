package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every application variable for the duration of the test
// so the host environment cannot leak in. t.Setenv restores the old values.
func clearEnv(t *testing.T) {
	t.Helper()

	names := []string{"PORT", "MONGODB_URI"}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix) {
			names = append(names, kv[:strings.Index(kv, "=")])
		}
	}

	for _, name := range names {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "BookInventory", cfg.Database.Name)
	assert.Equal(t, "books", cfg.Database.Collection)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.True(t, cfg.Observability.HealthChecks.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfig_PrefixedOverridesLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "6000")
	t.Setenv("BOOKSTORE_SERVER__PORT", "7000")
	t.Setenv("MONGODB_URI", "mongodb://legacy:27017")
	t.Setenv("BOOKSTORE_DATABASE__URI", "mongodb://prefixed:27017")
	t.Setenv("BOOKSTORE_PRIMARY__ENV", "production")
	t.Setenv("BOOKSTORE_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "mongodb://prefixed:27017", cfg.Database.URI)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_NestedOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("BOOKSTORE_PRIMARY__ENV", "local")
	t.Setenv("BOOKSTORE_SERVER__READ_TIMEOUT", "45")
	t.Setenv("BOOKSTORE_DATABASE__COLLECTION", "archive")
	t.Setenv("BOOKSTORE_OBSERVABILITY__HEALTH_CHECKS__TIMEOUT", "2s")
	t.Setenv("BOOKSTORE_OBSERVABILITY__LOGGING__FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsLocal())
	assert.Equal(t, 45, cfg.Server.ReadTimeout)
	assert.Equal(t, "archive", cfg.Database.Collection)
	assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Timeout)
	assert.Equal(t, "console", cfg.Observability.Logging.Format)

	// Untouched siblings keep their defaults.
	assert.True(t, cfg.Observability.HealthChecks.Enabled)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoadConfig_MissingURI(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("BOOKSTORE_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"BOOKSTORE_SERVER__PORT":                          "server.port",
		"BOOKSTORE_DATABASE__CONNECT_TIMEOUT":             "database.connect_timeout",
		"BOOKSTORE_OBSERVABILITY__NEW_RELIC__LICENSE_KEY": "observability.new_relic.license_key",
		"BOOKSTORE_OBSERVABILITY__HEALTH_CHECKS__ENABLED": "observability.health_checks.enabled",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "invalid logging format")

	cfg = DefaultObservabilityConfig()
	cfg.ServiceName = ""
	assert.ErrorContains(t, cfg.Validate(), "service_name is required")
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "local"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "error"
	assert.Equal(t, "error", cfg.GetLogLevel())
}

func TestObservabilityConfig_ValidateLevels(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	cfg.Logging.Level = ""
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "trace"
	assert.ErrorContains(t, cfg.Validate(), "invalid logging level: trace (must be one of: debug, info, warn, error)")

	cfg.Logging.Level = "warn"
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "slow_query_threshold")
}
