package leap

import (
	"fmt"
	"sort"
)

// Bound says whether an occurrence sitting exactly on the cursor counts as a
// candidate.
type Bound uint8

const (
	// Exclusive skips an occurrence that starts at the cursor.
	Exclusive Bound = iota
	// Inclusive accepts an occurrence that starts at the cursor.
	Inclusive
)

// String returns a string representation of the bound.
func (b Bound) String() string {
	if b == Inclusive {
		return "inclusive"
	}
	return "exclusive"
}

// ParseBound parses "inclusive" or "exclusive".
func ParseBound(s string) (Bound, error) {
	switch s {
	case "inclusive":
		return Inclusive, nil
	case "exclusive":
		return Exclusive, nil
	default:
		return Exclusive, fmt.Errorf("leap: unknown bound %q", s)
	}
}

// Boundary is the cursor boundary policy for each direction.
type Boundary struct {
	Forward Bound
	Reverse Bound
}

// DefaultBoundary makes forward leaps always move past the cursor while a
// reverse leap may stay on the occurrence under the cursor.
var DefaultBoundary = Boundary{Forward: Exclusive, Reverse: Inclusive}

// For returns the bound applied in direction d.
func (b Boundary) For(d Direction) Bound {
	if d == Reverse {
		return b.Reverse
	}
	return b.Forward
}

// Resolution is the outcome of resolving a target among occurrences.
type Resolution struct {
	// Target is the selected occurrence offset.
	Target int
	// Wrapped is true if no occurrence qualified in the requested
	// direction and the search wrapped around the region.
	Wrapped bool
}

// Resolve selects the occurrence to leap to using DefaultBoundary.
func Resolve(occurrences []int, cursor int, dir Direction) (Resolution, error) {
	return ResolveWithBoundary(occurrences, cursor, dir, DefaultBoundary)
}

// ResolveWithBoundary selects the occurrence to leap to.
//
// occurrences must be ascending. Forward picks the smallest occurrence after
// the cursor and wraps to the first one. Reverse picks the largest
// occurrence before the cursor and wraps to the last one. Whether an
// occurrence on the cursor qualifies is decided by boundary.
func ResolveWithBoundary(occurrences []int, cursor int, dir Direction, boundary Boundary) (Resolution, error) {
	n := len(occurrences)
	if n == 0 {
		return Resolution{}, ErrNoMatch
	}

	bound := boundary.For(dir)

	if dir == Reverse {
		// First index whose occurrence is past the acceptable limit.
		i := sort.Search(n, func(i int) bool {
			if bound == Inclusive {
				return occurrences[i] > cursor
			}
			return occurrences[i] >= cursor
		})
		if i == 0 {
			return Resolution{Target: occurrences[n-1], Wrapped: true}, nil
		}
		return Resolution{Target: occurrences[i-1]}, nil
	}

	i := sort.Search(n, func(i int) bool {
		if bound == Inclusive {
			return occurrences[i] >= cursor
		}
		return occurrences[i] > cursor
	})
	if i == n {
		return Resolution{Target: occurrences[0], Wrapped: true}, nil
	}
	return Resolution{Target: occurrences[i]}, nil
}
