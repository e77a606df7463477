// Package apperr defines the error taxonomy shared by all domain services:
// NotFound, Conflict, and Validation. Handlers translate these kinds into
// HTTP statuses; everything else is treated as an internal error.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

// Error is an application error carrying a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound returns a KindNotFound error with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a KindConflict error with a formatted message.
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation returns a KindValidation error with a formatted message.
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, unwrapping as needed. Errors that are not
// *Error report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a KindConflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsValidation reports whether err is a KindValidation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
