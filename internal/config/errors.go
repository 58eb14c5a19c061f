package config

import (
	"errors"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a setting has an invalid value.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError lists every invalid setting found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
