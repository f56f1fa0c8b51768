package errs

import "strings"

// HTTPError is the main custom error type for API responses.
//
// It is serialized directly as the response body. Only Message reaches the
// client, so error bodies always have the shape {"message": "..."}.
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND"), logs only.
//   - Message: human-friendly message sent to the client.
//   - Status: HTTP status code.
//   - cause: the underlying error, logs only.
type HTTPError struct {
	Code    string `json:"-"`
	Message string `json:"message"`
	Status  int    `json:"-"`

	cause error
}

// Error returns the message followed by the cause, if any.
//
// This string is meant for logs. Clients only ever see Message.
func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status/Message, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Not Found" -> "NOT_FOUND"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
