package leap

import "fmt"

// Range is a pair of character offsets. End is inclusive.
type Range struct {
	Start int
	End   int
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// Contains returns true if offset lies within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset <= r.End
}

// Region selects the part of the buffer that is scanned for occurrences.
type Region struct {
	full   bool
	bounds Range
}

// FullBuffer returns a region covering the whole buffer.
func FullBuffer() Region {
	return Region{full: true}
}

// Viewport returns a region limited to match starts in [start, end].
func Viewport(start, end int) Region {
	return Region{bounds: Range{Start: start, End: end}}
}

// ViewportRange returns a viewport region for r.
func ViewportRange(r Range) Region {
	return Viewport(r.Start, r.End)
}

// IsFull returns true if the region covers the whole buffer.
func (r Region) IsFull() bool {
	return r.full
}

// Bounds returns the viewport bounds. It is meaningless for a full region.
func (r Region) Bounds() Range {
	return r.bounds
}

// String returns a human-readable representation of the region.
func (r Region) String() string {
	if r.full {
		return "full"
	}
	return "viewport" + r.bounds.String()
}

// clamp returns the start offsets to scan for a buffer of n characters.
// ok is false when no start offset can lie in the region.
func (r Region) clamp(n int) (first, last int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if r.full {
		return 0, n - 1, true
	}
	first, last = r.bounds.Start, r.bounds.End
	if first < 0 {
		first = 0
	}
	if last > n-1 {
		last = n - 1
	}
	if first > last {
		return 0, 0, false
	}
	return first, last, true
}
