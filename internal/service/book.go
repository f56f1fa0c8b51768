package service

import (
	"context"

	"github.com/deppfellow/book-inventory/internal/model"
	"github.com/rs/zerolog"
)

// BookGateway is the collection contract the service depends on.
// repository.BookRepository is the production implementation.
type BookGateway interface {
	ListAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id string) (model.Book, bool, error)
	Insert(ctx context.Context, fields map[string]interface{}) (book model.Book, acknowledged bool, err error)
	UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// BookService performs exactly one gateway call per operation and never retries.
type BookService struct {
	books BookGateway
}

func NewBookService(books BookGateway) *BookService {
	return &BookService{books: books}
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.books.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int("count", len(books)).Msg("books listed")
	return books, nil
}

// GetBook reports found=false for a well-formed identifier with no match.
func (s *BookService) GetBook(ctx context.Context, id string) (model.Book, bool, error) {
	book, found, err := s.books.FindByID(ctx, id)
	if err != nil {
		return model.Book{}, false, err
	}

	if !found {
		zerolog.Ctx(ctx).Info().Str("book_id", id).Msg("book not found")
	}
	return book, found, nil
}

// CreateBook stores fields as a new book. Any "_id" in fields is ignored;
// the gateway assigns the identifier.
func (s *BookService) CreateBook(ctx context.Context, fields map[string]interface{}) (model.InsertResult, error) {
	if _, ok := fields[model.IDField]; ok {
		zerolog.Ctx(ctx).Debug().Msg("ignoring caller-supplied book identifier")
	}

	book, acknowledged, err := s.books.Insert(ctx, model.WithoutID(fields))
	if err != nil {
		return model.InsertResult{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("book_id", book.ID.Hex()).
		Bool("acknowledged", acknowledged).
		Msg("book created")

	return model.InsertResult{
		Acknowledged: acknowledged,
		InsertedID:   book.ID,
	}, nil
}

// UpdateBook merges fields into the stored book. The identifier itself
// can never be changed.
func (s *BookService) UpdateBook(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	matched, err := s.books.UpdateByID(ctx, id, model.WithoutID(fields))
	if err != nil {
		return false, err
	}

	if !matched {
		zerolog.Ctx(ctx).Info().Str("book_id", id).Msg("book not found")
		return false, nil
	}

	zerolog.Ctx(ctx).Info().Str("book_id", id).Msg("book updated")
	return true, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) (bool, error) {
	deleted, err := s.books.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}

	if !deleted {
		zerolog.Ctx(ctx).Info().Str("book_id", id).Msg("book not found")
		return false, nil
	}

	zerolog.Ctx(ctx).Info().Str("book_id", id).Msg("book deleted")
	return true, nil
}
