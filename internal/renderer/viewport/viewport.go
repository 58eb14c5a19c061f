// Package viewport tracks which lines of a buffer are on screen and maps
// that window to character offsets.
package viewport

import (
	"sync"
)

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	mu sync.RWMutex

	// First visible line
	topLine int

	// Size in screen cells
	width  int
	height int

	// Keep the target this many lines away from the edges when revealing
	marginTop    int
	marginBottom int

	// Number of lines in the buffer, 0 when unknown
	maxLine int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	return &Viewport{
		width:        width,
		height:       height,
		marginTop:    2,
		marginBottom: 2,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// BottomLine returns the last visible line.
func (v *Viewport) BottomLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bottomLine()
}

func (v *Viewport) bottomLine() int {
	bottom := v.topLine + v.height - 1
	if v.maxLine > 0 && bottom > v.maxLine-1 {
		bottom = v.maxLine - 1
	}
	return bottom
}

// Resize updates the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// SetMaxLine sets the number of lines in the buffer.
func (v *Viewport) SetMaxLine(maxLine int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if maxLine < 0 {
		maxLine = 0
	}
	v.maxLine = maxLine
	v.topLine = v.clampTop(v.topLine)
}

// SetMargins sets the scroll margins used by EnsureLineVisible.
func (v *Viewport) SetMargins(top, bottom int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.marginTop = max(top, 0)
	v.marginBottom = max(bottom, 0)
}

// VisibleLineRange returns the first and last visible lines.
func (v *Viewport) VisibleLineRange() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine, v.bottomLine()
}

// IsLineVisible reports whether a line is on screen.
func (v *Viewport) IsLineVisible(line int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return line >= v.topLine && line <= v.bottomLine()
}

// ScrollTo makes line the top line.
func (v *Viewport) ScrollTo(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(line)
}

// ScrollBy moves the top line by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(v.topLine + delta)
}

// CenterOn scrolls so that line sits in the middle of the viewport.
func (v *Viewport) CenterOn(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	top := line - v.height/2
	if v.maxLine > 0 && top > v.maxLine-v.height {
		top = v.maxLine - v.height
	}
	v.topLine = v.clampTop(top)
}

// EnsureLineVisible scrolls the minimum amount needed to show line with the
// configured margins. Returns true if the viewport moved.
func (v *Viewport) EnsureLineVisible(line int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	top := v.topLine
	marginTop := min(v.marginTop, (v.height-1)/2)
	marginBottom := min(v.marginBottom, (v.height-1)/2)

	switch {
	case line < v.topLine+marginTop:
		top = line - marginTop
	case line > v.topLine+v.height-1-marginBottom:
		top = line - v.height + 1 + marginBottom
	}

	top = v.clampTop(top)
	if top == v.topLine {
		return false
	}
	v.topLine = top
	return true
}

func (v *Viewport) clampTop(top int) int {
	if v.maxLine > 0 && top > v.maxLine-1 {
		top = v.maxLine - 1
	}
	if top < 0 {
		top = 0
	}
	return top
}

// Bounds returns the character offsets covered by the visible lines of
// text: the first character of the top line through the last character of
// the bottom line, its line break included. When the top line is past the
// end of text, start > end.
func (v *Viewport) Bounds(text string) (start, end int) {
	v.mu.RLock()
	top, height := v.topLine, v.height
	v.mu.RUnlock()

	bottom := top + height - 1
	line := 0
	start = -1
	offset := 0
	for _, r := range text {
		if line == top && start < 0 {
			start = offset
		}
		if r == '\n' {
			if line == bottom {
				return start, offset
			}
			line++
		}
		offset++
	}

	if start < 0 {
		return offset, offset - 1
	}
	return start, offset - 1
}

// LineOfOffset returns the zero-based line holding character offset in
// text, and the column within that line.
func LineOfOffset(text string, offset int) (line, col int) {
	i := 0
	for _, r := range text {
		if i == offset {
			return line, col
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		i++
	}
	return line, col
}

// LineCount returns the number of lines in text. An empty text and a text
// ending in a line break count the final empty line.
func LineCount(text string) int {
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}
