package middleware

import (
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares is built once per router from the server container.
type Middlewares struct {
	Global  *GlobalMiddlewares
	Scope   *RequestScope
	Tracing *Tracing
}

// NewMiddlewares constructs every middleware group. Tracing is a no-op when
// New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:  NewGlobalMiddlewares(s),
		Scope:   NewRequestScope(s),
		Tracing: NewTracing(nrApp),
	}
}
