package repository

import (
	"github.com/deppfellow/book-inventory/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Books *BookRepository
}

// NewRepositories constructs the repository container from the shared
// store connection held by the server.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Books: NewBookRepository(s.DB.Books()),
	}
}
