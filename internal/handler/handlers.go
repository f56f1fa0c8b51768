package handler

import (
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/deppfellow/book-inventory/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health  *HealthHandler  // Health serves the banner and /status.
	OpenAPI *OpenAPIHandler // OpenAPI serves the docs UI and document.
	Book    *BookHandler    // Book serves the CRUD routes.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Book:    NewBookHandler(s, services.Books),
	}
}
