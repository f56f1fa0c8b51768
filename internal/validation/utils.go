package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,objectid"`)
// - Implement Validate() error that calls Struct(req)
type Validatable interface {
	Validate() error
}

// Binder is implemented by request types that bind themselves instead of
// going through echo's DefaultBinder. Open-document payloads need this:
// the default binder copies path params into map targets.
type Binder interface {
	BindRequest(c echo.Context) error
}

// Kind tells a malformed body apart from a request that failed validation.
type Kind string

const (
	KindMalformedBody Kind = "MALFORMED_REQUEST_BODY"
	KindInvalidInput  Kind = "INVALID_INPUT"
)

// FieldError is a single validation issue for a specific field.
type FieldError struct {
	Field string
	Error string
}

// Error is returned by BindAndValidate.
type Error struct {
	Kind   Kind
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.Field+" "+field.Error)
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNotAnObject is returned when a JSON body is valid but not an object.
var ErrNotAnObject = errors.New("request body must be a JSON object")

// ErrTrailingData is returned when the body holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// objectid accepts the store's 24 character hex identifiers.
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})

	return v
}

// Struct validates v against its struct tags with the shared validator.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) payload.BindRequest(c) when payload is a Binder, c.Bind(payload) otherwise.
// 2) payload.Validate() applies validation rules.
// 3) Returns *Error describing which step failed.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	var err error
	if binder, ok := payload.(Binder); ok {
		err = binder.BindRequest(c)
	} else {
		err = c.Bind(payload)
	}
	if err != nil {
		return &Error{Kind: KindMalformedBody, Err: err}
	}

	if err := payload.Validate(); err != nil {
		return &Error{Kind: KindInvalidInput, Fields: extractFieldErrors(err), Err: err}
	}

	return nil
}

// BindObject decodes the request body as a single JSON object.
//
// An empty body, sized or chunked, yields an empty object. Arrays, scalars,
// and null are rejected with ErrNotAnObject; anything but whitespace after
// the object is a malformed body.
func BindObject(c echo.Context) (map[string]interface{}, error) {
	req := c.Request()
	if req.ContentLength == 0 || req.Body == nil || req.Body == http.NoBody {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(req.Body)

	var body interface{}
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, nil
		}
		return nil, errors.Wrap(err, "decoding request body")
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(ErrTrailingData, "decoding request body")
	}

	object, ok := body.(map[string]interface{})
	if !ok {
		return nil, errors.Wrapf(ErrNotAnObject, "got %T", body)
	}

	return object, nil
}

func extractFieldErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "objectid":
			msg = "must be a 24 character hex identifier"

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("failed %s", fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: msg,
		})
	}

	return fieldErrors
}
