// Package domain holds the errors shared by every entity package.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected by an entity or service rule.
	ErrValidation = errors.New("validation error")
	// ErrForbidden is returned when the caller lacks the role an action needs.
	ErrForbidden = errors.New("forbidden")
)

// Invalid returns an ErrValidation carrying a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
