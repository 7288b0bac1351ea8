package report

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors that escape report generation
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindSerialization ErrorKind = "serialization"
	KindTimeout       ErrorKind = "timeout"
)

// Error is the structured error surfaced to callers of Generate
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
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

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func serializationError(msg string, err error) error {
	return &Error{Kind: KindSerialization, Message: msg, Err: err}
}

// KindOf returns the kind of err, or "" if err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsTimeout reports whether err is a timeout error
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// IsSerialization reports whether err is a serialization error
func IsSerialization(err error) bool { return KindOf(err) == KindSerialization }
