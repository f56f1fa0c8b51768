// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/book-inventory/internal/handler"
	"github.com/deppfellow/book-inventory/internal/middleware"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the full middleware stack and
// every route registered.
//
// Middleware order matters:
//   - RequestID first, so every later layer can read the id
//   - New Relic transactions before Annotate and Attach, which read the transaction
//   - Attach before RequestLogger, which logs through the request logger
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.Transactions(),
		middlewares.Tracing.Annotate(),
		middlewares.Scope.Attach(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)
	registerBookRoutes(router, h)

	return router
}
