package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEngine indicates the text reader is required but not set.
	ErrMissingEngine = errors.New("execution context: engine is required")

	// ErrMissingCursors indicates the cursor reader is required but not set.
	ErrMissingCursors = errors.New("execution context: cursors are required")

	// ErrMissingRenderer indicates the view reader is required but not set.
	ErrMissingRenderer = errors.New("execution context: renderer is required")
)
