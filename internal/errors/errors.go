// Package errors holds the sentinel errors every layer wraps. Handlers map a
// sentinel to a status code, so a domain error only has to wrap the right one.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the write collides with existing data, such as a
	// registration for an email that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized covers bad credentials and missing or invalid bearer tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated caller may not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrConfiguration indicates the process was started with missing or invalid settings.
	// It is only ever returned while wiring components at start-up.
	ErrConfiguration = errors.New("configuration error")
)

// New returns an error carrying message. Domain packages use it to declare
// their own sentinels next to the shared ones.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping err in the chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
