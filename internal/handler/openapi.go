package handler

import (
	"embed"
	"net/http"

	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	openAPIPage     = "static/openapi.html"
	openAPIDocument = "static/openapi.json"
)

//go:embed static/openapi.html static/openapi.json
var docsFS embed.FS

// OpenAPIHandler serves the embedded API docs: a Scalar page at /docs that
// loads the OpenAPI document from /docs/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	return serveDoc(c, openAPIPage, echo.MIMETextHTMLCharsetUTF8)
}

func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	return serveDoc(c, openAPIDocument, echo.MIMEApplicationJSON)
}

// serveDoc writes an embedded file uncached so clients always see the current
// docs.
func serveDoc(c echo.Context, name, contentType string) error {
	body, err := docsFS.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, contentType, body)
}
