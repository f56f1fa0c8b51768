package router_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/deppfellow/book-inventory/internal/middleware"
)

func newRequestWithID(method, target, requestID string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	if requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}
	return req, httptest.NewRecorder()
}
