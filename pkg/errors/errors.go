// Package errors defines the coded errors shared by the CLI and the HTTP API.
//
// Every failure a user can act on carries a [Code]. Codes group into a
// [Kind], which front ends map to exit statuses and HTTP statuses:
//
//	err := errors.New(errors.ErrCodeVPCNotFound, "no VPC with id %s", id)
//	errors.Is(err, errors.ErrCodeVPCNotFound) // true
//	errors.KindOf(err)                        // errors.KindNotFound
//
// Wrap keeps the underlying error reachable through the standard library's
// errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"
	ErrCodeInvalidResource Code = "INVALID_RESOURCE"
	ErrCodeInvalidVPCID    Code = "INVALID_VPC_ID"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeVPCNotFound  Code = "VPC_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Shared cache backends.
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Kind is the coarse class of a Code.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindUnavailable
)

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:    KindInvalid,
	ErrCodeInvalidSnapshot: KindInvalid,
	ErrCodeInvalidResource: KindInvalid,
	ErrCodeInvalidVPCID:    KindInvalid,
	ErrCodeInvalidPath:     KindInvalid,
	ErrCodeInvalidConfig:   KindInvalid,
	ErrCodeVPCNotFound:     KindNotFound,
	ErrCodeFileNotFound:    KindNotFound,
	ErrCodeNetwork:         KindUnavailable,
	ErrCodeTimeout:         KindUnavailable,
}

// Kind returns the class of c. Unknown codes are internal.
func (c Code) Kind() Kind { return kinds[c] }

// Error is a coded error with an optional cause.
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

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether err's chain holds an *Error whose code is code. Coded
// errors wrapped inside other coded errors are checked too.
func Is(err error, code Code) bool {
	if code == "" {
		return false
	}
	for e := asError(err); e != nil; e = asError(e.Cause) {
		if e.Code == code {
			return true
		}
	}
	return false
}

// KindOf classifies err. Errors without a code are internal.
func KindOf(err error) Kind { return GetCode(err).Kind() }

func IsInvalid(err error) bool  { return KindOf(err) == KindInvalid }
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// UserMessage is the text to show a person: the message of a coded error
// without its code and cause, otherwise err.Error().
func UserMessage(err error) string {
	if e := asError(err); e != nil {
		return e.Message
	}
	return err.Error()
}
