package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a targeted or referenced key is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a key or name is already taken.
	ErrConflict = errors.New("conflict")
	// ErrInvalid: a value is well formed but not acceptable here.
	ErrInvalid = errors.New("invalid")
)

// ValidationError is a rejected write or lookup. Kind is one of the
// sentinels above.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func notFound(format string, args ...any) error {
	return &ValidationError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &ValidationError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalid, Message: fmt.Sprintf(format, args...)}
}
