package middleware

import (
	"net/http"

	"github.com/deppfellow/book-inventory/internal/errs"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/deppfellow/book-inventory/internal/storeerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

// RouteNotFoundMessage is the body message for unmatched paths and methods.
const RouteNotFoundMessage = "Route not found"

// GlobalMiddlewares holds the middleware applied to every route, plus the
// echo error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

// CORS allows the origins in server.cors_allowed_origins (default "*").
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// Recover turns panics into errors answered as 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// toHTTPError decides the response for an error that reached echo:
//   - *errs.HTTPError is answered as is
//   - no route for the path or method is a 404 "Route not found"
//   - other echo errors keep their status with the standard status text
//   - anything else is a generic 500
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound || echoErr.Code == http.StatusMethodNotAllowed {
			return errs.NewNotFoundError(RouteNotFoundMessage)
		}
		text := http.StatusText(echoErr.Code)
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(text),
			Message: text,
			Status:  echoErr.Code,
		}
	}

	if errors.As(storeerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError(http.StatusText(http.StatusInternalServerError), err)
}

// statusFromError returns the status GlobalErrorHandler answers err with.
func statusFromError(err error) int {
	return toHTTPError(err).Status
}

// GlobalErrorHandler writes every error as a {"message": "..."} body and logs
// the underlying error. 5xx is logged as error with a stack, 4xx as info.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)
	event := logger.Info()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	event.Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.JSON(httpErr.Status, httpErr)
}
