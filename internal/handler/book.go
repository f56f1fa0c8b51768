package handler

import (
	"github.com/deppfellow/book-inventory/internal/errs"
	"github.com/deppfellow/book-inventory/internal/model"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/deppfellow/book-inventory/internal/service"
	"github.com/deppfellow/book-inventory/internal/validation"
	"github.com/labstack/echo/v4"
)

// Response messages. Failure messages are the only text a client ever sees
// for a 500; store error details stay in the logs.
const (
	MsgFetchBooksFailed = "Failed to fetch books"
	MsgFetchBookFailed  = "Failed to fetch book"
	MsgUploadFailed     = "Failed to upload book"
	MsgUpdateFailed     = "Failed to update book"
	MsgDeleteFailed     = "Failed to delete book"
	MsgBookNotFound     = "Book not found"
	MsgBookUpdated      = "Book updated successfully!"
	MsgBookDeleted      = "Book deleted successfully!"
)

// ListBooksRequest carries nothing. Any request body is ignored.
type ListBooksRequest struct{}

func NewListBooksRequest() *ListBooksRequest { return &ListBooksRequest{} }

func (r *ListBooksRequest) BindRequest(c echo.Context) error { return nil }

func (r *ListBooksRequest) Validate() error { return nil }

// BookIDRequest identifies one book by its path parameter.
type BookIDRequest struct {
	ID string `param:"id" validate:"required,objectid"`
}

func NewBookIDRequest() *BookIDRequest { return &BookIDRequest{} }

// BindRequest reads only the path; get and delete ignore any body.
func (r *BookIDRequest) BindRequest(c echo.Context) error {
	return echo.PathParamsBinder(c).String("id", &r.ID).BindError()
}

func (r *BookIDRequest) Validate() error {
	return validation.Struct(r)
}

// CreateBookRequest is an arbitrary JSON object.
type CreateBookRequest struct {
	Fields map[string]interface{}
}

func NewCreateBookRequest() *CreateBookRequest { return &CreateBookRequest{} }

func (r *CreateBookRequest) BindRequest(c echo.Context) error {
	fields, err := validation.BindObject(c)
	if err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

// Validate accepts any object: books have no schema.
func (r *CreateBookRequest) Validate() error { return nil }

// UpdateBookRequest is a partial JSON object for the book in the path.
type UpdateBookRequest struct {
	ID     string `param:"id" validate:"required,objectid"`
	Fields map[string]interface{}
}

func NewUpdateBookRequest() *UpdateBookRequest { return &UpdateBookRequest{} }

func (r *UpdateBookRequest) BindRequest(c echo.Context) error {
	if err := echo.PathParamsBinder(c).String("id", &r.ID).BindError(); err != nil {
		return err
	}

	fields, err := validation.BindObject(c)
	if err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

func (r *UpdateBookRequest) Validate() error {
	return validation.Struct(r)
}

// BookHandler serves the book CRUD routes.
type BookHandler struct {
	Handler
	books *service.BookService
}

func NewBookHandler(s *server.Server, books *service.BookService) *BookHandler {
	return &BookHandler{
		Handler: NewHandler(s),
		books:   books,
	}
}

func (h *BookHandler) ListBooks(c echo.Context, _ *ListBooksRequest) ([]model.Book, error) {
	return h.books.ListBooks(c.Request().Context())
}

func (h *BookHandler) GetBook(c echo.Context, req *BookIDRequest) (model.Book, error) {
	book, found, err := h.books.GetBook(c.Request().Context(), req.ID)
	if err != nil {
		return model.Book{}, err
	}
	if !found {
		return model.Book{}, errs.NewNotFoundError(MsgBookNotFound)
	}
	return book, nil
}

func (h *BookHandler) CreateBook(c echo.Context, req *CreateBookRequest) (model.InsertResult, error) {
	return h.books.CreateBook(c.Request().Context(), req.Fields)
}

func (h *BookHandler) UpdateBook(c echo.Context, req *UpdateBookRequest) (model.MessageResponse, error) {
	matched, err := h.books.UpdateBook(c.Request().Context(), req.ID, req.Fields)
	if err != nil {
		return model.MessageResponse{}, err
	}
	if !matched {
		return model.MessageResponse{}, errs.NewNotFoundError(MsgBookNotFound)
	}
	return model.MessageResponse{Message: MsgBookUpdated}, nil
}

func (h *BookHandler) DeleteBook(c echo.Context, req *BookIDRequest) (model.MessageResponse, error) {
	deleted, err := h.books.DeleteBook(c.Request().Context(), req.ID)
	if err != nil {
		return model.MessageResponse{}, err
	}
	if !deleted {
		return model.MessageResponse{}, errs.NewNotFoundError(MsgBookNotFound)
	}
	return model.MessageResponse{Message: MsgBookDeleted}, nil
}
