// Package errors defines the coded errors shared by every sorttrace package.
//
// Each failure carries a [Code] so callers can branch on the kind of problem
// without matching message text. The CLI turns codes into exit statuses and
// the HTTP server turns them into status codes and JSON bodies.
//
// Codes are grouped by prefix. Every INVALID_* code means the caller supplied
// something unusable and retrying with the same input will fail again; see
// [IsInvalid].
//
//	err := errors.New(errors.ErrCodeInvalidLength, "length must be non-negative, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidLength) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidLength Code = "INVALID_LENGTH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeEndOfTrace is returned when a trace is pulled past its last event.
	ErrCodeEndOfTrace Code = "END_OF_TRACE"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// ErrCodeNetwork covers failures talking to a remote cache.
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

const invalidPrefix = "INVALID_"

// Error is an error with a code, a message for people, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with the given code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like New but records cause, which stays reachable through
// errors.Unwrap and errors.Is.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether any *Error in err's chain carries code. An outer
// NETWORK_ERROR wrapping an INVALID_INPUT therefore matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "" if
// there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalid reports whether err's code is one of the INVALID_* codes.
func IsInvalid(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), invalidPrefix)
}

// UserMessage returns the message of the outermost *Error without its code
// prefix or cause, falling back to err.Error() for foreign errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
