package service

import (
	"github.com/deppfellow/book-inventory/internal/repository"
)

type Services struct {
	Books *BookService
}

func NewService(repos *repository.Repositories) *Services {
	return &Services{
		Books: NewBookService(repos.Books),
	}
}
