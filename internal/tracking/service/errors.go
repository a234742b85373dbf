package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by the tracking services. Every failure is
// caller-fixable: nothing in this package retries internally, and a failed
// operation never leaves a partially applied transaction behind.
var (
	// ErrNotFound marks a missing unit, record, item or note reference.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks an operation rejected by business rules: wrong
	// record status for the requested action, incomplete required items,
	// missing required photos, or an ownership mismatch.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks duplicate-creation races: a VIN that already exists,
	// or starting a second in-progress workflow run for a unit.
	ErrConflict = errors.New("conflict")
)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// notFoundf wraps ErrNotFound with a formatted message.
func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// validationf wraps ErrValidation with a formatted message.
func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// conflictf wraps ErrConflict with a formatted message.
func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
