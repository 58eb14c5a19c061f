// Package leap implements the leap motion: jump to the nearest occurrence
// of a short literal pattern relative to the cursor.
//
// The package is split in three layers:
//
//   - FindOccurrences enumerates the character offsets where a pattern
//     starts, over the whole buffer or only the visible viewport.
//   - Resolve picks one of those offsets relative to the cursor, wrapping
//     around when nothing lies in the requested direction.
//   - Leap and ReverseLeap bind both steps to a snapshot of the editor and
//     return a MotionResult for the command layer.
//
// All offsets are rune offsets into the buffer text, line breaks included.
// Nothing here mutates editor state or keeps state between calls; applying
// the returned target is the caller's job.
package leap
