package middleware

import (
	"github.com/deppfellow/book-inventory/internal/logger"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerKey is the echo context key of the request-scoped logger.
const LoggerKey = "logger"

// RequestScope derives a logger per request from the application logger.
type RequestScope struct {
	server *server.Server
}

func NewRequestScope(s *server.Server) *RequestScope {
	return &RequestScope{server: s}
}

// Attach stores the request logger on the echo context (see GetLogger) and on
// the request context, where services pick it up with zerolog.Ctx.
//
// It must run after RequestID and the New Relic middleware.
func (rs *RequestScope) Attach() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := rs.loggerFor(c)
			c.Set(LoggerKey, &reqLogger)

			req := c.Request()
			c.SetRequest(req.WithContext(reqLogger.WithContext(req.Context())))

			return next(c)
		}
	}
}

func (rs *RequestScope) loggerFor(c echo.Context) zerolog.Logger {
	fields := rs.server.Logger.With().
		Str("request_id", GetRequestID(c)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("ip", c.RealIP())

	if bookID := c.Param("id"); bookID != "" {
		fields = fields.Str("book_id", bookID)
	}

	l := fields.Logger()
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		l = logger.WithTraceContext(l, txn)
	}
	return l
}

// GetLogger returns the request logger, or a no-op logger outside Attach.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}
