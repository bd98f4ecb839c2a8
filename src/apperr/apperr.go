// Package apperr defines the error kinds the API surfaces to clients and the
// HTTP status each one maps to. Storage and handler code wraps failures in one
// of these so the boundary layer never has to inspect raw driver errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Kind    string
	Message string
	Status  int
	Err     error
}

var (
	ErrValidation      = &Error{Kind: "VALIDATION", Message: "invalid request", Status: http.StatusBadRequest}
	ErrUnauthenticated = &Error{Kind: "UNAUTHENTICATED", Message: "authorization required", Status: http.StatusUnauthorized}
	ErrForbidden       = &Error{Kind: "FORBIDDEN", Message: "not authorized", Status: http.StatusForbidden}
	ErrNotFound        = &Error{Kind: "NOT_FOUND", Message: "resource not found", Status: http.StatusNotFound}
	ErrConflict        = &Error{Kind: "CONFLICT", Message: "resource conflict", Status: http.StatusConflict}
	ErrInternal        = &Error{Kind: "INTERNAL", Message: "internal error", Status: http.StatusInternalServerError}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two errors of the same kind, so wrapped errors built with
// WithMessage still satisfy errors.Is(err, ErrNotFound) etc.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// WithMessage returns a copy of e carrying a caller-facing message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Message: msg, Status: e.Status}
}

// Wrap returns a copy of e keeping the underlying cause for server-side logs.
// The cause is never part of the client response.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Status: e.Status, Err: err}
}

func Validation(msg string) *Error { return ErrValidation.WithMessage(msg) }

// Status returns the HTTP status for err, defaulting to 500 for anything that
// is not an *Error.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Message returns the client-safe message for err. Unknown errors collapse to
// a generic message so storage detail never leaks to the caller.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
