// Package apperr carries the service error taxonomy. Services return
// errors wrapping one of the kind sentinels; the HTTP layer maps kinds
// to status codes without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers malformed or empty input.
	ErrValidation = errors.New("validation")
	// ErrForbidden covers an authenticated caller with insufficient
	// role or without ownership of the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound covers absent entities, and deliberately disguises
	// authorization denials that must not leak existence.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers duplicate actions and lost-update detection.
	ErrConflict = errors.New("conflict")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrValidation, args)...)
}

func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrForbidden, args)...)
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrNotFound, args)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrConflict, args)...)
}

func prepend(err error, args []any) []any {
	return append([]any{err}, args...)
}

// Message strips the kind prefix for the user-facing error body.
func Message(err error) string {
	for _, kind := range []error{ErrValidation, ErrForbidden, ErrNotFound, ErrConflict} {
		if errors.Is(err, kind) {
			msg := err.Error()
			prefix := kind.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return "internal server error"
}
