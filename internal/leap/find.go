package leap

// FindOccurrences returns the ascending character offsets at which pattern
// starts within region of text.
//
// Matching is literal and case-sensitive. Overlapping matches are all
// reported: the scan advances one character past each match start. In a
// viewport region only the start offset has to be inside the bounds; the
// match itself may extend past the end.
func FindOccurrences(text, pattern string, region Region) ([]int, error) {
	if pattern == "" {
		return nil, ErrInvalidPattern
	}

	// starts[i] is the byte offset of character i; the final entry is
	// len(text). An invalid byte counts as one character.
	starts := make([]int, 0, len(text)+1)
	boundary := make([]bool, len(text)+1)
	for b := range text {
		starts = append(starts, b)
		boundary[b] = true
	}
	starts = append(starts, len(text))
	boundary[len(text)] = true

	first, last, ok := region.clamp(len(starts) - 1)
	if !ok {
		return []int{}, nil
	}

	// Bytes are compared, not decoded characters, so an invalid byte only
	// matches the same byte. A match must also end on a character boundary.
	offsets := make([]int, 0)
	for i := first; i <= last; i++ {
		b := starts[i]
		end := b + len(pattern)
		if end <= len(text) && boundary[end] && text[b:end] == pattern {
			offsets = append(offsets, i)
		}
	}
	return offsets, nil
}
