// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/leap/internal/leap"
	"github.com/dshills/leap/internal/logging"
)

// TextReader provides read access to the buffer text.
type TextReader interface {
	// Text returns the full buffer contents.
	Text() string
	// LineColumn converts a character offset to a 0-indexed line and
	// column.
	LineColumn(offset int) (line, col int)
}

// CursorReader provides read access to the primary cursor.
type CursorReader interface {
	// Primary returns the character offset of the primary cursor.
	Primary() int
}

// ViewReader provides read access to the rendered region.
type ViewReader interface {
	// VisibleRange returns the character offsets of the first and last
	// visible characters.
	VisibleRange() (start, end int)
}

// ExecutionContext provides context for action execution.
// It contains references to the editor subsystems handlers read from.
type ExecutionContext struct {
	// Engine provides access to the text buffer.
	Engine TextReader

	// Cursors provides access to cursor state.
	Cursors CursorReader

	// Renderer provides the visible range.
	Renderer ViewReader

	// Logger is scoped to the current dispatch.
	Logger *logging.Logger

	// RequestID identifies the dispatch this context was built for.
	RequestID string

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler state that outlives a single dispatch.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count:  1,
		Data:   make(map[string]interface{}),
		Logger: logging.Null(),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine TextReader) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithCursors returns the context with cursors set.
func (ctx *ExecutionContext) WithCursors(cursors CursorReader) *ExecutionContext {
	ctx.Cursors = cursors
	return ctx
}

// WithRenderer returns the context with renderer set.
func (ctx *ExecutionContext) WithRenderer(renderer ViewReader) *ExecutionContext {
	ctx.Renderer = renderer
	return ctx
}

// WithLogger returns the context with logger set.
func (ctx *ExecutionContext) WithLogger(logger *logging.Logger) *ExecutionContext {
	ctx.Logger = logging.OrNull(logger)
	return ctx
}

// WithData returns the context sharing the given data map.
func (ctx *ExecutionContext) WithData(data map[string]interface{}) *ExecutionContext {
	if data != nil {
		ctx.Data = data
	}
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context can serve read-only motions.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	return nil
}

// Snapshot captures text, cursor and visible range for a leap.
// Without a renderer the whole buffer counts as visible.
func (ctx *ExecutionContext) Snapshot() (leap.Snapshot, error) {
	if err := ctx.Validate(); err != nil {
		return leap.Snapshot{}, err
	}

	text := ctx.Engine.Text()
	snap := leap.Snapshot{
		Text:   text,
		Cursor: ctx.Cursors.Primary(),
		View:   leap.Range{Start: 0, End: len([]rune(text)) - 1},
	}
	if ctx.Renderer != nil {
		start, end := ctx.Renderer.VisibleRange()
		snap.View = leap.Range{Start: start, End: end}
	}
	return snap, nil
}

// IsVisible returns true if offset lies in the visible range.
// Without a renderer every offset is visible.
func (ctx *ExecutionContext) IsVisible(offset int) bool {
	if ctx.Renderer == nil {
		return true
	}
	start, end := ctx.Renderer.VisibleRange()
	return offset >= start && offset <= end
}
