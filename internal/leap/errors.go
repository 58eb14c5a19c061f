package leap

import "errors"

// Leap errors.
var (
	// ErrInvalidPattern indicates an empty search pattern.
	ErrInvalidPattern = errors.New("leap: pattern must not be empty")

	// ErrNoMatch indicates the pattern does not occur in the scanned region.
	ErrNoMatch = errors.New("leap: no match")
)
