// Package input turns Bubble Tea key and mouse messages into desktop
// operations.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

// handleMouseClick handles mouse click events
func handleMouseClick(msg tea.MouseClickMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}

	// Overlays swallow the click that dismisses them.
	if m.ShowHelp || m.ShowLogs {
		m.ShowHelp, m.ShowLogs = false, false
		return m, nil
	}

	// One gesture at a time; a second button press mid-drag does nothing.
	if m.Gesturing() {
		return m, nil
	}

	p := geom.Point{X: mouse.X, Y: mouse.Y}
	hit := m.HitTest(mouse.X, mouse.Y)

	switch hit.Kind {
	case app.HitDialogStay:
		m.DismissDialog(true)
	case app.HitDialogLater, app.HitDialogOutside:
		m.DismissDialog(false)
	case app.HitBackdrop:
		m.ToggleMaximize(hit.Index)
	case app.HitTitle:
		m.FocusWindow(hit.Index)
		m.StartDrag(hit.Index, p)
	case app.HitEdge:
		m.FocusWindow(hit.Index)
		m.StartResize(hit.Index, hit.Edge, p)
	case app.HitBody:
		m.FocusWindow(hit.Index)
	case app.HitMinimize:
		m.FocusWindow(hit.Index)
		return m, m.ToggleMinimize(hit.Index)
	case app.HitMaximize:
		m.ToggleMaximize(hit.Index)
	case app.HitClose:
		m.FocusWindow(hit.Index)
		m.RequestClose(hit.Index)
	}
	return m, nil
}

// handleMouseMotion feeds the active gesture.
func handleMouseMotion(msg tea.MouseMotionMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	m.MovePointer(geom.Point{X: mouse.X, Y: mouse.Y})
	return m, nil
}

// handleMouseRelease ends the active gesture.
func handleMouseRelease(msg tea.MouseReleaseMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	// The release position counts as the last move.
	m.MovePointer(geom.Point{X: mouse.X, Y: mouse.Y})
	return m, m.EndGesture()
}

// handleMouseWheel scrolls whatever is on top.
func handleMouseWheel(msg tea.MouseWheelMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	var delta int
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return m, nil
	}

	switch {
	case m.ShowHelp:
		m.ScrollHelp(delta)
	case m.ShowLogs:
		m.ScrollLogs(delta * config.WheelScrollRows)
	case m.Gesturing():
	default:
		if _, w := m.DialogWindow(); w != nil {
			return m, nil
		}
		if _, w := m.MaximizedWindow(); w != nil {
			return m, nil
		}
		m.Scroll(delta * config.WheelScrollRows)
	}
	return m, nil
}
