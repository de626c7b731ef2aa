package careplan

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates assessment-engine failures so handlers can map
// them to HTTP responses without string matching.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindInvalidCategory ErrorKind = "INVALID_CATEGORY"
	KindInvalidInput    ErrorKind = "INVALID_INPUT"
	KindPersistence     ErrorKind = "PERSISTENCE_ERROR"
	KindUnauthorized    ErrorKind = "UNAUTHORIZED"
)

// FieldError carries a validation message for a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the engine's failure type. Fields is populated only for
// KindInvalidInput. For KindPersistence, Err retains the underlying store
// error for logging; it is never sent to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func notFoundErr(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func invalidCategoryErr(got, want Category) *Error {
	return &Error{
		Kind:    KindInvalidCategory,
		Message: fmt.Sprintf("item category is %s, expected %s", got, want),
	}
}

func invalidInputErr(fields []FieldError) *Error {
	return &Error{Kind: KindInvalidInput, Message: "invalid input", Fields: fields}
}

func persistenceErr(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: op + " failed", Err: err}
}

// AsError extracts a *Error from err, wrapping unknown errors as
// persistence failures so raw store errors never leak upward unlabeled.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindPersistence, Message: "operation failed", Err: err}
}
