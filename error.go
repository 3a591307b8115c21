package rood

import (
	"errors"
	"fmt"
)

// Cause classifies an Error.
type Cause int

const (
	// Existence issues.
	CauseAlreadyExists Cause = iota
	CauseNotFound

	CauseConcurrency

	// User-related errors.
	CauseInvalidData
	CauseInvalidState
	CauseSerialization

	CauseIO
	CauseTime

	// CauseGeneral carries its detail in Error.Message.
	CauseGeneral
)

var causeNames = map[Cause]string{
	CauseAlreadyExists: "AlreadyExists",
	CauseNotFound:      "NotFound",
	CauseConcurrency:   "ConcurrencyError",
	CauseInvalidData:   "InvalidData",
	CauseInvalidState:  "InvalidState",
	CauseSerialization: "SerializationError",
	CauseIO:            "IOError",
	CauseTime:          "TimeError",
	CauseGeneral:       "GeneralError",
}

// String returns the cause name.
func (c Cause) String() string {
	if name, ok := causeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cause(%d)", int(c))
}

// Error is the error type returned by every fallible operation in rood.
type Error struct {
	Cause   Cause
	Message string
	// Err is the underlying failure, if any.
	Err error
}

// NewError creates an Error with the given cause and message.
func NewError(cause Cause, msg string) *Error {
	return &Error{Cause: cause, Message: msg}
}

// GeneralError creates an Error with CauseGeneral and the given detail.
func GeneralError(detail string) *Error {
	return &Error{Cause: CauseGeneral, Message: detail}
}

// IOError converts a lower-level I/O failure into an Error.
// The original error text becomes the message and stays reachable via Unwrap.
// Returns nil for a nil err.
func IOError(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Cause: CauseIO, Message: err.Error(), Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] - %s", e.Cause, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same cause.
// A target with a message only matches errors carrying the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Cause != e.Cause {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// CauseOf returns the cause of err and whether err is (or wraps) an *Error.
func CauseOf(err error) (Cause, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause, true
	}
	return CauseGeneral, false
}
