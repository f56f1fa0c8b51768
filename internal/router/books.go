package router

import (
	"net/http"

	"github.com/deppfellow/book-inventory/internal/handler"
	"github.com/labstack/echo/v4"
)

// readMethods answers HEAD wherever GET is served.
var readMethods = []string{http.MethodGet, http.MethodHead}

func registerBookRoutes(r *echo.Echo, h *handler.Handlers) {
	books := h.Book

	r.Match(readMethods, "/all-books", handler.Handle(
		books.Handler,
		books.ListBooks,
		http.StatusOK,
		handler.NewListBooksRequest,
		handler.MsgFetchBooksFailed,
	))

	r.Match(readMethods, "/book/:id", handler.Handle(
		books.Handler,
		books.GetBook,
		http.StatusOK,
		handler.NewBookIDRequest,
		handler.MsgFetchBookFailed,
	))

	r.POST("/upload-book", handler.Handle(
		books.Handler,
		books.CreateBook,
		http.StatusOK,
		handler.NewCreateBookRequest,
		handler.MsgUploadFailed,
	))

	r.PUT("/update-book/:id", handler.Handle(
		books.Handler,
		books.UpdateBook,
		http.StatusOK,
		handler.NewUpdateBookRequest,
		handler.MsgUpdateFailed,
	))

	r.DELETE("/delete-book/:id", handler.Handle(
		books.Handler,
		books.DeleteBook,
		http.StatusOK,
		handler.NewBookIDRequest,
		handler.MsgDeleteFailed,
	))
}
