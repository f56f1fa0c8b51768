package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Tracing wires New Relic into echo. With a nil application both middlewares
// pass requests straight through.
type Tracing struct {
	nrApp *newrelic.Application
}

func NewTracing(nrApp *newrelic.Application) *Tracing {
	return &Tracing{nrApp: nrApp}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

// Transactions starts a transaction per request and stores it in the request
// context.
func (t *Tracing) Transactions() echo.MiddlewareFunc {
	if t.nrApp == nil {
		return passThrough
	}
	return nrecho.Middleware(t.nrApp)
}

// Annotate adds request attributes to the current transaction and records
// the response status. Only server-side failures are noticed as errors; a
// missing book is a normal answer.
func (t *Tracing) Annotate() echo.MiddlewareFunc {
	if t.nrApp == nil {
		return passThrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			for key, value := range requestAttributes(c) {
				txn.AddAttribute(key, value)
			}

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
				if status >= http.StatusInternalServerError {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
			}
			txn.AddAttribute("http.status_code", status)

			return err
		}
	}
}

func requestAttributes(c echo.Context) map[string]string {
	attrs := map[string]string{
		"http.real_ip":    c.RealIP(),
		"http.user_agent": c.Request().UserAgent(),
	}
	if requestID := GetRequestID(c); requestID != "" {
		attrs["request.id"] = requestID
	}
	if bookID := c.Param("id"); bookID != "" {
		attrs["book.id"] = bookID
	}
	return attrs
}
