package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/dshills/leap/internal/renderer/viewport"
)

// Document is an open text with a cursor and a viewport. It is the host
// the leap motions read from and the dispatcher writes back to.
type Document struct {
	mu sync.RWMutex

	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	text   string
	length int
	cursor int
	view   *viewport.Viewport
}

// NewDocument creates a document over content. A nil view shows the
// whole text.
func NewDocument(path string, content []byte, view *viewport.Viewport) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}

	text := string(content)
	if view == nil {
		view = viewport.NewViewport(80, viewport.LineCount(text))
	}
	view.SetMaxLine(viewport.LineCount(text))

	return &Document{
		Path:   path,
		Name:   name,
		text:   text,
		length: utf8.RuneCountInString(text),
		view:   view,
	}
}

// Viewport returns the document's viewport.
func (d *Document) Viewport() *viewport.Viewport {
	return d.view
}

// Len returns the length of the text in characters.
func (d *Document) Len() int {
	return d.length
}

// CurrentText returns the full text.
func (d *Document) CurrentText() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Text returns the full text.
func (d *Document) Text() string {
	return d.CurrentText()
}

// CursorOffset returns the cursor's character offset.
func (d *Document) CursorOffset() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursor
}

// Primary returns the cursor's character offset.
func (d *Document) Primary() int {
	return d.CursorOffset()
}

// ViewportBounds returns the character offsets of the visible lines.
func (d *Document) ViewportBounds() (start, end int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view.Bounds(d.text)
}

// VisibleRange returns the character offsets of the visible lines.
func (d *Document) VisibleRange() (start, end int) {
	return d.ViewportBounds()
}

// LineColumn converts a character offset to a 0-indexed line and column.
func (d *Document) LineColumn(offset int) (line, col int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return viewport.LineOfOffset(d.text, offset)
}

// SetCursor moves the cursor, rejecting offsets outside the text.
func (d *Document) SetCursor(offset int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if offset < 0 || offset > d.length {
		return fmt.Errorf("%w: %d (length %d)", ErrOffsetOutOfRange, offset, d.length)
	}
	d.cursor = offset
	return nil
}

// MoveCursorTo moves the cursor, clamping offset to the text.
func (d *Document) MoveCursorTo(offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = max(0, min(offset, d.length))
}

// ScrollTo reveals line. The viewport has no horizontal scroll, so the
// column is ignored, and so is whether the view moved.
func (d *Document) ScrollTo(line, _ int) {
	_ = d.view.EnsureLineVisible(line)
}

// CenterOnLine scrolls line to the middle of the viewport.
func (d *Document) CenterOnLine(line int) {
	d.view.CenterOn(line)
}
