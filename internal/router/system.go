package router

import (
	"github.com/deppfellow/book-inventory/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the book API:
//  1. Root banner
//  2. Health endpoint
//  3. Docs UI and the OpenAPI document it loads
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.Match(readMethods, "/", h.Health.ServeBanner)

	// Used by load balancers and uptime monitors.
	r.Match(readMethods, "/status", h.Health.CheckHealth)

	r.Match(readMethods, "/docs", h.OpenAPI.ServeOpenAPIUI)
	r.Match(readMethods, "/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
