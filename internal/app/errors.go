package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrOffsetOutOfRange indicates a cursor offset past the end of the text.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInitialization indicates an initialization failure.
	ErrInitialization = errors.New("initialization failed")

	// ErrUnboundKey indicates a key with no action bound to it.
	ErrUnboundKey = errors.New("key not bound")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "open", "config", "lua")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
