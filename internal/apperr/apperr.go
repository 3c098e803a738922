// Package apperr defines the stable error taxonomy surfaced to API callers.
// Every business failure is an *Error with a machine-readable code; the HTTP
// layer maps codes to status codes and never exposes raw driver errors.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnauthenticated Code = "unauthenticated"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeInvalidRange    Code = "invalid_range"
	CodeSlotUnavailable Code = "slot_unavailable"
	CodeAlreadyAccepted Code = "already_accepted"
	CodeHasAssignments  Code = "has_assignments"
	CodeInvalidRole     Code = "invalid_role"
	CodeConflict        Code = "conflict"
	CodeInternal        Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	err     error
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause that stays out of the client-facing message.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// CodeOf extracts the taxonomy code from err, or CodeInternal for
// anything that is not an *Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
