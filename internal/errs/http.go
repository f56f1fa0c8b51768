package errs

import (
	"net/http"
)

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Not found is a normal outcome, so there is no cause to carry.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// message is a static, client-safe text. cause is only written to logs.
func NewInternalServerError(message string, cause error) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: message,
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}
