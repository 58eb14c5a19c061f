package leap

// Direction is the search direction of a leap.
type Direction uint8

const (
	// Forward selects the next occurrence after the cursor.
	Forward Direction = iota
	// Reverse selects the occurrence at or before the cursor.
	Reverse
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}
