package handler

import "fmt"

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ScrollTarget specifies a scroll destination.
type ScrollTarget struct {
	// Line is the target line number.
	Line int
	// Column is the target column number.
	Column int
	// Center indicates whether to center the view on the target.
	Center bool
}

// ViewUpdate describes required view updates.
type ViewUpdate struct {
	// ScrollTo specifies a scroll destination.
	ScrollTo *ScrollTarget
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// CursorTarget is the offset the command layer should move the
	// cursor to, or nil to leave it alone.
	CursorTarget *int

	// ViewUpdate indicates required view updates.
	ViewUpdate ViewUpdate

	// Data holds handler-specific return data.
	Data map[string]interface{}
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsNoOp returns true if the action had no effect.
func (r Result) IsNoOp() bool {
	return r.Status == StatusNoOp
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithCursorTarget returns a copy of the result moving the cursor to offset.
func (r Result) WithCursorTarget(offset int) Result {
	r.CursorTarget = &offset
	return r
}

// WithScrollTo returns a copy of the result with a scroll target.
func (r Result) WithScrollTo(line, col int, center bool) Result {
	r.ViewUpdate.ScrollTo = &ScrollTarget{
		Line:   line,
		Column: col,
		Center: center,
	}
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value interface{}) Result {
	data := make(map[string]interface{}, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}
