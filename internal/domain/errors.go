package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidRequest   ErrorKind = "invalid_request"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindExecutionFailure ErrorKind = "execution_failure"
	KindNotFound         ErrorKind = "not_found"
	KindForbidden        ErrorKind = "forbidden"
)

// Error is the typed failure returned by the list compiler, the financial
// engine and the services. The transport layer picks the HTTP status from Kind.
type Error struct {
	Kind  ErrorKind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func InvalidRequest(field, msg string) error {
	return &Error{Kind: KindInvalidRequest, Field: field, Msg: msg}
}

func InvalidInput(field, msg string) error {
	return &Error{Kind: KindInvalidInput, Field: field, Msg: msg}
}

func ExecutionFailure(msg string, err error) error {
	return &Error{Kind: KindExecutionFailure, Msg: msg, Err: err}
}

func NotFound(resource string) error {
	return &Error{Kind: KindNotFound, Msg: resource + " not found"}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return ""
}

func IsInvalidRequest(err error) bool   { return KindOf(err) == KindInvalidRequest }
func IsInvalidInput(err error) bool     { return KindOf(err) == KindInvalidInput }
func IsExecutionFailure(err error) bool { return KindOf(err) == KindExecutionFailure }
func IsNotFound(err error) bool         { return KindOf(err) == KindNotFound }
func IsForbidden(err error) bool        { return KindOf(err) == KindForbidden }
