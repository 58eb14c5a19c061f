// Package leap provides the handler for leap motions.
//
// This package binds the leap motion to the dispatcher:
//   - Leap forward to the next occurrence of a pattern (leap.forward)
//   - Leap back to the occurrence at or before the cursor (leap.backward)
//   - Repeat the last leap in the same direction (leap.repeat)
//   - Repeat the last leap in the opposite direction (leap.repeatReverse)
//
// Patterns are literal. A leap scans the visible viewport unless the action
// asks for the full buffer. The handler never moves the cursor itself; it
// returns the target in the result and the dispatcher applies it.
package leap
