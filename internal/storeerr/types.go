package storeerr

import "fmt"

// Code is the category of a store failure.
type Code string

const (
	// InvalidIdentifier means the caller supplied an id the store cannot
	// parse, so the query could not even be built.
	InvalidIdentifier Code = "INVALID_IDENTIFIER"

	// Unavailable covers connectivity problems, timeouts, and cancelled
	// contexts.
	Unavailable Code = "STORE_UNAVAILABLE"

	// Rejected means the server received the command and refused it.
	Rejected Code = "COMMAND_REJECTED"

	// Other is everything the classifier does not recognise.
	Other Code = "OTHER"
)

// Error is a classified store failure.
//
// Op names the gateway operation that failed (list, find, insert, ...).
// ServerCode is the MongoDB error code when the server produced one.
type Error struct {
	Code       Code
	Op         string
	ServerCode int
	Message    string

	driverErr error
}

func (e *Error) Error() string {
	if e.ServerCode != 0 {
		return fmt.Sprintf("%s: %s (server code %d): %s", e.Op, e.Code, e.ServerCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

// Unwrap exposes the driver error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.driverErr
}
