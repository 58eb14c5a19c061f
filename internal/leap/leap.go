package leap

import (
	"errors"

	"github.com/dshills/leap/internal/logging"
)

// Host is the read side of the editor a leap runs against.
type Host interface {
	// CurrentText returns the full buffer contents.
	CurrentText() string
	// CursorOffset returns the cursor's character offset.
	CursorOffset() int
	// ViewportBounds returns the character offsets of the rendered region.
	ViewportBounds() (start, end int)
}

// Snapshot is an immutable read of the editor taken for one leap.
type Snapshot struct {
	Text   string
	Cursor int
	View   Range
}

// TakeSnapshot reads text, cursor and viewport from h.
func TakeSnapshot(h Host) Snapshot {
	start, end := h.ViewportBounds()
	return Snapshot{
		Text:   h.CurrentText(),
		Cursor: h.CursorOffset(),
		View:   Range{Start: start, End: end},
	}
}

// MotionResult is the outcome of a leap, consumed once by the command layer.
type MotionResult struct {
	// CursorPos is the resolved target, or the original cursor if nothing
	// was found.
	CursorPos int
	// CommandName is the label of the command that requested the leap.
	CommandName string
	// Found is false when the pattern did not occur in the region.
	Found bool
	// Wrapped is true when the target was reached by wrapping around.
	Wrapped bool
	// Direction is the direction the leap searched in.
	Direction Direction
	// Matches is the number of occurrences in the scanned region.
	Matches int
}

// Moved returns true if applying the result changes the cursor.
func (r MotionResult) Moved(from int) bool {
	return r.Found && r.CursorPos != from
}

// Leaper runs leaps with a fixed boundary policy.
type Leaper struct {
	boundary Boundary
	logger   *logging.Logger
}

// Option configures a Leaper.
type Option func(*Leaper)

// WithBoundary sets the boundary policy.
func WithBoundary(b Boundary) Option {
	return func(l *Leaper) {
		l.boundary = b
	}
}

// WithLogger sets the logger used to trace leaps.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Leaper) {
		l.logger = logger
	}
}

// NewLeaper creates a Leaper using DefaultBoundary unless overridden.
func NewLeaper(opts ...Option) *Leaper {
	l := &Leaper{boundary: DefaultBoundary}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.OrNull(l.logger).WithComponent("leap")
	return l
}

// Boundary returns the boundary policy in use.
func (l *Leaper) Boundary() Boundary {
	return l.boundary
}

var defaultLeaper = NewLeaper()

// Leap jumps forward to the next occurrence of pattern after the cursor.
func Leap(snap Snapshot, pattern string, fullView bool, commandName string) (MotionResult, error) {
	return defaultLeaper.Leap(snap, pattern, fullView, commandName)
}

// ReverseLeap jumps back to the occurrence of pattern at or before the
// cursor.
func ReverseLeap(snap Snapshot, pattern string, fullView bool, commandName string) (MotionResult, error) {
	return defaultLeaper.ReverseLeap(snap, pattern, fullView, commandName)
}

// Leap jumps forward to the next occurrence of pattern after the cursor.
func (l *Leaper) Leap(snap Snapshot, pattern string, fullView bool, commandName string) (MotionResult, error) {
	return l.Run(snap, pattern, fullView, commandName, Forward)
}

// ReverseLeap jumps back to the occurrence of pattern at or before the
// cursor.
func (l *Leaper) ReverseLeap(snap Snapshot, pattern string, fullView bool, commandName string) (MotionResult, error) {
	return l.Run(snap, pattern, fullView, commandName, Reverse)
}

// Run performs a leap in direction dir.
//
// On ErrNoMatch and ErrInvalidPattern the returned result leaves the cursor
// where it was and has Found set to false.
func (l *Leaper) Run(snap Snapshot, pattern string, fullView bool, commandName string, dir Direction) (MotionResult, error) {
	result := MotionResult{
		CursorPos:   snap.Cursor,
		CommandName: commandName,
		Direction:   dir,
	}

	region := FullBuffer()
	if !fullView {
		region = ViewportRange(snap.View)
	}

	occurrences, err := FindOccurrences(snap.Text, pattern, region)
	if err != nil {
		return result, err
	}
	result.Matches = len(occurrences)

	res, err := ResolveWithBoundary(occurrences, snap.Cursor, dir, l.boundary)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			l.logger.Debug("%s %q in %s: no match", dir, pattern, region)
		}
		return result, err
	}

	result.CursorPos = res.Target
	result.Found = true
	result.Wrapped = res.Wrapped

	l.logger.Debug("%s %q in %s: %d -> %d (matches=%d wrapped=%t)",
		dir, pattern, region, snap.Cursor, res.Target, len(occurrences), res.Wrapped)
	return result, nil
}
