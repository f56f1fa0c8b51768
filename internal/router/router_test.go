package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/book-inventory/internal/handler"
	"github.com/deppfellow/book-inventory/internal/middleware"
	"github.com/deppfellow/book-inventory/internal/repository"
	"github.com/deppfellow/book-inventory/internal/router"
	"github.com/deppfellow/book-inventory/internal/service"
	"github.com/deppfellow/book-inventory/internal/testing/fakes"
	"github.com/deppfellow/book-inventory/internal/testing/helpers"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter(t *testing.T) (*echo.Echo, *fakes.Books) {
	t.Helper()

	s := helpers.NewTestServer(t)
	books := fakes.NewBooks()
	services := &service.Services{Books: service.NewBookService(books)}

	return router.NewRouter(s, handler.NewHandlers(s, services)), books
}

func decode(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRoot(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running...", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
}

func TestListBooks_Empty(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodGet, "/all-books", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListBooks(t *testing.T) {
	e, books := newTestRouter(t)
	first := books.Seed(map[string]interface{}{"title": "Dune"})
	second := books.Seed(map[string]interface{}{"title": "Emma"})

	rec := helpers.Do(t, e, http.MethodGet, "/all-books", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"_id":"`+first.Hex()+`","title":"Dune"},{"_id":"`+second.Hex()+`","title":"Emma"}]`,
		rec.Body.String())
}

func TestUploadThenGet(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodPost, "/upload-book", `{"title":"Dune","author":"Herbert"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	created := decode(t, rec.Body.Bytes())
	assert.Equal(t, true, created["acknowledged"])
	insertedID, ok := created["insertedId"].(string)
	require.True(t, ok)
	assert.True(t, primitive.IsValidObjectID(insertedID))

	rec = helpers.Do(t, e, http.MethodGet, "/book/"+insertedID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"_id":"`+insertedID+`","title":"Dune","author":"Herbert"}`, rec.Body.String())
}

func TestUpload_IgnoresCallerID(t *testing.T) {
	e, _ := newTestRouter(t)
	callerID := primitive.NewObjectID().Hex()

	rec := helpers.Do(t, e, http.MethodPost, "/upload-book", `{"_id":"`+callerID+`","title":"Dune"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	insertedID := decode(t, rec.Body.Bytes())["insertedId"].(string)
	assert.NotEqual(t, callerID, insertedID)

	rec = helpers.Do(t, e, http.MethodGet, "/book/"+insertedID, "")
	assert.JSONEq(t, `{"_id":"`+insertedID+`","title":"Dune"}`, rec.Body.String())
}

func TestUpload_EmptyBody(t *testing.T) {
	e, books := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodPost, "/upload-book", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, books.Len())
}

func TestUpload_EmptyChunkedBody(t *testing.T) {
	e, books := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload-book", io.NopCloser(strings.NewReader("")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, books.Len())
}

func TestUpload_BodyNotAnObject(t *testing.T) {
	for name, body := range map[string]string{
		"array":            `[{"title":"Dune"}]`,
		"scalar":           `"Dune"`,
		"null":             `null`,
		"malformed":        `{"title":`,
		"trailing garbage": `{"title":"x"} junk`,
	} {
		t.Run(name, func(t *testing.T) {
			e, books := newTestRouter(t)

			rec := helpers.Do(t, e, http.MethodPost, "/upload-book", body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"message":"Failed to upload book"}`, rec.Body.String())
			assert.Equal(t, 0, books.Len())
		})
	}
}

func TestGetBook_NotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodGet, "/book/"+primitive.NewObjectID().Hex(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Book not found"}`, rec.Body.String())
}

func TestMalformedIdentifier(t *testing.T) {
	tests := []struct {
		method  string
		target  string
		body    string
		message string
	}{
		{http.MethodGet, "/book/not-a-valid-id", "", "Failed to fetch book"},
		{http.MethodPut, "/update-book/not-a-valid-id", `{"title":"X"}`, "Failed to update book"},
		{http.MethodDelete, "/delete-book/not-a-valid-id", "", "Failed to delete book"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			e, _ := newTestRouter(t)

			rec := helpers.Do(t, e, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"message":"`+tt.message+`"}`, rec.Body.String())
		})
	}
}

func TestUpdateBook(t *testing.T) {
	e, books := newTestRouter(t)
	id := books.Seed(map[string]interface{}{"title": "A", "author": "B"}).Hex()

	rec := helpers.Do(t, e, http.MethodPut, "/update-book/"+id, `{"author":"C"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Book updated successfully!"}`, rec.Body.String())

	rec = helpers.Do(t, e, http.MethodGet, "/book/"+id, "")
	assert.JSONEq(t, `{"_id":"`+id+`","title":"A","author":"C"}`, rec.Body.String())
}

func TestUpdateBook_CannotChangeID(t *testing.T) {
	e, books := newTestRouter(t)
	id := books.Seed(map[string]interface{}{"title": "A"}).Hex()
	other := primitive.NewObjectID().Hex()

	rec := helpers.Do(t, e, http.MethodPut, "/update-book/"+id, `{"_id":"`+other+`","title":"B"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = helpers.Do(t, e, http.MethodGet, "/book/"+id, "")
	assert.JSONEq(t, `{"_id":"`+id+`","title":"B"}`, rec.Body.String())

	rec = helpers.Do(t, e, http.MethodGet, "/book/"+other, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBook_EmptyBody(t *testing.T) {
	e, books := newTestRouter(t)
	id := books.Seed(map[string]interface{}{"title": "A"}).Hex()

	rec := helpers.Do(t, e, http.MethodPut, "/update-book/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = helpers.Do(t, e, http.MethodPut, "/update-book/"+primitive.NewObjectID().Hex(), `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBook_NotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodPut, "/update-book/"+primitive.NewObjectID().Hex(), `{"title":"X"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Book not found"}`, rec.Body.String())
}

func TestUpdateBook_BodyNotAnObject(t *testing.T) {
	e, books := newTestRouter(t)
	id := books.Seed(map[string]interface{}{"title": "A"}).Hex()

	rec := helpers.Do(t, e, http.MethodPut, "/update-book/"+id, `["title"]`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Failed to update book"}`, rec.Body.String())
}

func TestDeleteBook(t *testing.T) {
	e, books := newTestRouter(t)
	id := books.Seed(map[string]interface{}{"title": "Dune"}).Hex()

	rec := helpers.Do(t, e, http.MethodDelete, "/delete-book/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully!"}`, rec.Body.String())

	rec = helpers.Do(t, e, http.MethodGet, "/book/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = helpers.Do(t, e, http.MethodDelete, "/delete-book/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Book not found"}`, rec.Body.String())
}

func TestStoreFailures(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		op      string
		method  string
		target  string
		body    string
		message string
	}{
		{repository.OpList, http.MethodGet, "/all-books", "", "Failed to fetch books"},
		{repository.OpFind, http.MethodGet, "/book/" + id, "", "Failed to fetch book"},
		{repository.OpInsert, http.MethodPost, "/upload-book", `{"title":"Dune"}`, "Failed to upload book"},
		{repository.OpUpdate, http.MethodPut, "/update-book/" + id, `{"title":"X"}`, "Failed to update book"},
		{repository.OpDelete, http.MethodDelete, "/delete-book/" + id, "", "Failed to delete book"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			e, books := newTestRouter(t)
			books.FailWith(tt.op, errors.New("connection refused by 10.0.0.7"))

			rec := helpers.Do(t, e, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"message":"`+tt.message+`"}`, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "10.0.0.7")
		})
	}

	t.Run("timeout", func(t *testing.T) {
		e, books := newTestRouter(t)
		books.FailWith(repository.OpList, context.DeadlineExceeded)

		rec := helpers.Do(t, e, http.MethodGet, "/all-books", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Failed to fetch books"}`, rec.Body.String())
	})
}

func TestUnmatchedRoutes(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodGet, "/no-such-route", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, rec.Body.String())

	rec = helpers.Do(t, e, http.MethodPost, "/book/"+primitive.NewObjectID().Hex(), `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, rec.Body.String())
}

func TestHeadOnReadRoutes(t *testing.T) {
	e, books := newTestRouter(t)
	id := books.Seed(map[string]interface{}{"title": "Dune"})

	for _, target := range []string{"/", "/status", "/docs", "/docs/openapi.json", "/all-books", "/book/" + id.Hex()} {
		rec := helpers.Do(t, e, http.MethodHead, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}

	rec := helpers.Do(t, e, http.MethodHead, "/book/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = helpers.Do(t, e, http.MethodHead, "/upload-book", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestID(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := helpers.Do(t, e, http.MethodGet, "/all-books", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req, recorder := newRequestWithID(http.MethodGet, "/book/not-a-valid-id", "req-123")
	e.ServeHTTP(recorder, req)
	assert.Equal(t, "req-123", recorder.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCORS(t *testing.T) {
	e, _ := newTestRouter(t)

	req, rec := newRequestWithID(http.MethodGet, "/all-books", "")
	req.Header.Set(echo.HeaderOrigin, "http://example.com")
	e.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
