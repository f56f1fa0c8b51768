package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// RequestIDHeader carries the correlation id in both directions.
	RequestIDHeader = echo.HeaderXRequestID

	// RequestIDKey is the echo context key holding the id.
	RequestIDKey = "request_id"

	maxRequestIDLength = 128
)

// RequestID assigns every request a correlation id.
//
// An upstream X-Request-ID is kept when it is short printable ASCII; anything
// else is replaced with a fresh UUID so log lines stay well formed. The id is
// echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	assign := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		TargetHeader: RequestIDHeader,
		Generator:    uuid.NewString,
		RequestIDHandler: func(c echo.Context, requestID string) {
			c.Set(RequestIDKey, requestID)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withID := assign(next)

		return func(c echo.Context) error {
			header := c.Request().Header
			if id := header.Get(RequestIDHeader); id != "" && !validRequestID(id) {
				header.Del(RequestIDHeader)
			}
			return withID(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func validRequestID(id string) bool {
	if len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
