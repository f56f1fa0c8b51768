package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/book-inventory/internal/middleware"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BannerText is the plain text answer on the root path.
const BannerText = "Server is running..."

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

var errNoDatabase = errors.New("database not initialized")

// CheckResult is the outcome of a single dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the /status body.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// dependencyCheck tests one dependency within the configured timeout.
type dependencyCheck struct {
	name string
	run  func(ctx context.Context) error
}

// HealthHandler serves the root banner and the /status endpoint.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// ServeBanner answers GET / with a plain text liveness message.
func (h *HealthHandler) ServeBanner(c echo.Context) error {
	return c.String(http.StatusOK, BannerText)
}

func (h *HealthHandler) checks() []dependencyCheck {
	if !h.server.Config.Observability.HealthChecks.Enabled {
		return nil
	}

	return []dependencyCheck{{
		name: "database",
		run: func(ctx context.Context) error {
			if h.server.DB == nil {
				return errNoDatabase
			}
			return h.server.DB.Ping(ctx)
		},
	}}
}

// CheckHealth runs the enabled checks and answers 200 when all pass, 503
// otherwise. With checks disabled it only reports that the process is up.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	timeout := h.server.Config.Observability.HealthChecks.Timeout

	response := HealthResponse{
		Status:      StatusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	for _, p := range h.checks() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		checkStart := time.Now()
		err := p.run(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		result := CheckResult{Status: StatusHealthy, ResponseTime: elapsed.String()}
		if err != nil {
			result.Status = StatusUnhealthy
			result.Error = err.Error()
			response.Status = StatusUnhealthy

			logger.Error().Err(err).Str("check", p.name).Dur("response_time", elapsed).Msg("health check failed")
			h.recordHealthEvent(map[string]interface{}{
				"check_type":       p.name,
				"error_type":       p.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			logger.Debug().Str("check", p.name).Dur("response_time", elapsed).Msg("health check passed")
		}

		response.Checks[p.name] = result
	}

	status := http.StatusOK
	if response.Status != StatusHealthy {
		status = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
	}

	if err := c.JSON(status, response); err != nil {
		return errors.Wrap(err, "failed to write health response")
	}
	return nil
}

// recordHealthEvent sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordHealthEvent(params map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		params["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", params)
	}
}
