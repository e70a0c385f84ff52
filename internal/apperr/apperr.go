// Package apperr defines the error taxonomy shared by services and handlers.
// Every caller-facing failure carries a stable kind plus a human-readable
// message; anything outside the taxonomy is reported generically.
package apperr

import (
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidRequest Kind = "invalid_request"
	KindNotFound       Kind = "not_found"
	KindConfiguration  Kind = "configuration"
	KindInternal       Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string

	// Entity and EntityID identify the missing entity for KindNotFound.
	Entity   string
	EntityID uint

	err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, id uint) *Error {
	return &Error{
		Kind:     KindNotFound,
		Message:  fmt.Sprintf("%s with ID %d not found", entity, id),
		Entity:   entity,
		EntityID: id,
	}
}

func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Internal wraps an unexpected error. The wrapped cause is kept for logging
// but the message shown to callers stays generic.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", err: err}
}
