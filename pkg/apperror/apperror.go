package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the services can return. Handlers map kinds
// to HTTP responses; services never return raw storage errors to callers.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindInvalidTransition  Kind = "invalid_transition"
	KindValidationFailed   Kind = "validation_failed"
	KindConflict           Kind = "conflict"
	KindPersistenceFailure Kind = "persistence_failure"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, usually only set for persistence failures
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InvalidTransition(msg string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: msg}
}

func ValidationFailed(msg string) *Error {
	return &Error{Kind: KindValidationFailed, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Persistence wraps a storage error. The cause is kept for logging but the
// message is what callers may expose.
func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistenceFailure, Message: msg, Err: err}
}

// KindOf extracts the kind from err, or KindPersistenceFailure for anything
// that is not an *Error (unknown failures are treated as internal).
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistenceFailure
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
