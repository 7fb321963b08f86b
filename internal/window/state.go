package window

import "github.com/Gaurav-Gosain/deskfolio/internal/geom"

// Mode is the interaction mode of a window. A window is in exactly one mode,
// so combinations such as dragging a minimized window cannot be expressed.
type Mode int

const (
	// Normal is the resting mode; gestures may start from here.
	Normal Mode = iota
	// Dragging means the title bar is held and the window follows the mouse.
	Dragging
	// Resizing means a border grip is held.
	Resizing
	// Minimized collapses the content region.
	Minimized
	// Maximized centers the window above a backdrop.
	Maximized
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Minimized:
		return "minimized"
	case Maximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// Gesturing reports whether m is Dragging or Resizing.
func (m Mode) Gesturing() bool {
	return m == Dragging || m == Resizing
}

// State is a snapshot of one window's interaction state.
type State struct {
	Mode   Mode
	Offset geom.Point // Translation from the window's flow position
	Size   geom.Size  // Explicit size; zero means auto
	Moved  bool       // Whether Offset and Size should be applied at all
	Coarse bool       // Viewport too narrow for gestures
	Dialog bool       // Close confirmation is open

	pending TimerKind
}

// Returning reports whether a snap-back is scheduled but has not happened yet.
func (s State) Returning() bool {
	return s.pending == TimerReturn
}

// Settling reports whether the window has snapped back and is waiting to
// clear Moved.
func (s State) Settling() bool {
	return s.pending == TimerSettle
}
