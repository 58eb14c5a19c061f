package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction indicates the action is invalid.
	ErrInvalidAction = errors.New("dispatcher: invalid action")

	// ErrDuplicateNamespace indicates a namespace is already registered.
	ErrDuplicateNamespace = errors.New("dispatcher: namespace already registered")
)
