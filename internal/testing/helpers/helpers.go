// Package helpers builds application containers for tests.
//
// NewTestServer returns a *server.Server with default configuration, a
// discarded logger, New Relic disabled, and no store connection. Tests plug
// fakes.Books in below the service layer instead of a real database.
package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/book-inventory/internal/config"
	"github.com/deppfellow/book-inventory/internal/logger"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// TestConfig returns the configuration LoadConfig would produce with only
// MONGODB_URI set.
func TestConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.HealthChecks.Enabled = false

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			URI:            "mongodb://localhost:27017",
			Name:           "BookInventory",
			Collection:     "books",
			ConnectTimeout: 10 * time.Second,
		},
		Observability: obs,
	}
}

// NewTestServer builds a server container without a database.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()

	log := zerolog.Nop()
	loggerService, err := logger.NewLoggerService(TestConfig().Observability)
	if err != nil {
		t.Fatalf("logger service: %v", err)
	}

	return &server.Server{
		Config:        TestConfig(),
		Logger:        &log,
		LoggerService: loggerService,
	}
}

// Do sends a request through handler and returns the recorded response.
// A non-empty body is sent as JSON.
func Do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
