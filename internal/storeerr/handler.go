package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/deppfellow/book-inventory/internal/errs"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrCode reports the Code of a classified error, or Other.
func ErrCode(err error) Code {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return Other
}

// NewInvalidIdentifier builds the error returned when id cannot be parsed.
func NewInvalidIdentifier(op, id string, cause error) *Error {
	return &Error{
		Code:      InvalidIdentifier,
		Op:        op,
		Message:   fmt.Sprintf("malformed identifier %q", id),
		driverErr: cause,
	}
}

// Classify converts a driver error into *Error.
//
// nil stays nil and errors that are already classified are returned unchanged.
// mongo.ErrNoDocuments is not an error for this service and must be handled
// by the caller before classification.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}

	classified := &Error{
		Code:      Other,
		Op:        op,
		Message:   err.Error(),
		driverErr: err,
	}

	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsTimeout(err),
		mongo.IsNetworkError(err):
		classified.Code = Unavailable
	default:
		if code, ok := serverCode(err); ok {
			classified.Code = Rejected
			classified.ServerCode = code
		}
	}

	return classified
}

// serverCode extracts the error code from command and write errors.
func serverCode(err error) (int, bool) {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return int(cmdErr.Code), true
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		if len(writeErr.WriteErrors) > 0 {
			return writeErr.WriteErrors[0].Code, true
		}
		if writeErr.WriteConcernError != nil {
			return writeErr.WriteConcernError.Code, true
		}
	}

	return 0, false
}

// HandleError converts an unclassified error into an application HTTP error.
//
// Store failures never leak driver details to clients: every code maps to a
// generic 500. Handlers that know which operation failed should build their
// own errs.HTTPError with an operation-specific message instead.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	return errs.NewInternalServerError(http.StatusText(http.StatusInternalServerError), err)
}
