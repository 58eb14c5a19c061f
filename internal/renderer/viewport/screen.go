package viewport

import (
	"github.com/gdamore/tcell/v2"
)

// FromScreen creates a viewport covering the screen, minus reserved rows
// at the bottom (status and command lines).
func FromScreen(s tcell.Screen, reserved int) *Viewport {
	w, h := s.Size()
	return NewViewport(w, h-reserved)
}
