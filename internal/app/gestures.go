package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/ui"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// TimerMsg delivers a controller timer after its delay.
type TimerMsg struct {
	Timer window.Timer
}

// ScheduleTimer turns a controller timer into a Bubble Tea command.
func ScheduleTimer(t window.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return TimerMsg{Timer: t}
	})
}

// Resize records a new viewport and recomputes the coarse flag of every
// window. A gesture cut short by the breakpoint loses its binding.
func (m *Desktop) Resize(width, height int) {
	m.Width, m.Height = width, height
	if m.closed {
		return
	}
	for _, w := range m.Windows {
		coarse := width < w.Ctl.Policy().CoarseBelow
		if w.Ctl.SetCoarse(coarse) {
			m.releaseGesture(w.ID)
			m.LogDebug("gesture cancelled by coarse viewport", "window", w.Title, "width", width)
		}
	}
	m.ScrollY = min(m.ScrollY, m.MaxScroll())
}

// Coarse reports whether the viewport is below the coarse breakpoint.
func (m *Desktop) Coarse() bool {
	return m.Width < m.policy.CoarseBelow
}

// Gesturing reports whether a drag or resize holds the mouse.
func (m *Desktop) Gesturing() bool {
	return m.Bindings.Listening()
}

// StartDrag starts dragging window i with the mouse at p.
func (m *Desktop) StartDrag(i int, p geom.Point) bool {
	w := m.Window(i)
	if w == nil || m.closed || m.Gesturing() {
		return false
	}
	if !w.Ctl.BeginDrag(p) {
		return false
	}
	m.cancelAnimations(w.ID, ui.AnimationGlide)
	m.release = m.Bindings.Acquire(w.ID)
	m.LogDebug("drag started", "window", w.Title)
	return true
}

// StartResize starts resizing window i from edge with the mouse at p.
func (m *Desktop) StartResize(i int, edge geom.Edge, p geom.Point) bool {
	w := m.Window(i)
	if w == nil || m.closed || m.Gesturing() {
		return false
	}
	pl, ok := m.placementOf(i)
	if !ok {
		return false
	}
	natural := geom.Size{Width: pl.Rect.Dx(), Height: pl.Rect.Dy()}
	if !w.Ctl.BeginResize(edge, p, natural) {
		return false
	}
	m.cancelAnimations(w.ID, ui.AnimationGlide)
	m.release = m.Bindings.Acquire(w.ID)
	m.LogDebug("resize started", "window", w.Title, "edge", edge.String())
	return true
}

// gestureWindow returns the window holding the binding.
func (m *Desktop) gestureWindow() *Window {
	id, ok := m.Bindings.Owner()
	if !ok {
		return nil
	}
	_, w := m.WindowByID(id)
	return w
}

// MovePointer feeds a motion event to the active gesture.
func (m *Desktop) MovePointer(p geom.Point) bool {
	w := m.gestureWindow()
	if w == nil {
		return false
	}
	return w.Ctl.Move(p)
}

// EndGesture finishes the active gesture, releases its binding and returns
// the snap-back timer when the drag went too far.
func (m *Desktop) EndGesture() tea.Cmd {
	w := m.gestureWindow()
	if w == nil {
		return nil
	}
	mode := w.Ctl.State().Mode
	t, ok := w.Ctl.End()
	m.releaseGesture(w.ID)

	st := w.Ctl.State()
	switch {
	case ok:
		m.LogInfo("window dragged too far, snapping back",
			"window", w.Title,
			"distance", geom.DistanceFromOrigin(st.Offset),
			"delay", t.Delay)
		return ScheduleTimer(t)
	case mode == window.Resizing:
		m.LogDebug("resize ended", "window", w.Title, "width", st.Size.Width, "height", st.Size.Height)
	default:
		m.LogDebug("drag ended", "window", w.Title, "x", st.Offset.X, "y", st.Offset.Y)
	}
	return nil
}

// releaseGesture drops the binding when it belongs to id.
func (m *Desktop) releaseGesture(id string) {
	if owner, ok := m.Bindings.Owner(); !ok || owner != id {
		return
	}
	if m.release != nil {
		m.release()
		m.release = nil
	}
}

// ToggleMinimize collapses or restores window i, animating the body.
func (m *Desktop) ToggleMinimize(i int) tea.Cmd {
	w := m.Window(i)
	if w == nil {
		return nil
	}
	before, _ := m.placementOf(i)
	if !w.Ctl.ToggleMinimize() {
		return nil
	}
	m.cancelAnimations(w.ID, ui.AnimationGlide, ui.AnimationCollapse, ui.AnimationExpand)

	d := m.cfg.Appearance.AnimationDuration()
	if w.Ctl.State().Mode == window.Minimized {
		m.LogDebug("window minimized", "window", w.Title)
		if d > 0 && before.Rows > 0 {
			return m.startAnimation(ui.NewCollapseAnimation(w.ID, before.Rows, d, m.now()))
		}
		return nil
	}

	m.LogDebug("window restored", "window", w.Title)
	after, _ := m.placementOf(i)
	if d > 0 && after.Rows > 0 {
		return m.startAnimation(ui.NewExpandAnimation(w.ID, after.Rows, d, m.now()))
	}
	return nil
}

// ToggleMaximize maximizes or restores window i.
func (m *Desktop) ToggleMaximize(i int) bool {
	w := m.Window(i)
	if w == nil || !w.Ctl.ToggleMaximize() {
		return false
	}
	m.cancelAnimations(w.ID, ui.AnimationCollapse, ui.AnimationExpand)
	if w.Ctl.State().Mode == window.Maximized {
		m.FocusWindow(i)
		m.LogDebug("window maximized", "window", w.Title)
	} else {
		m.LogDebug("window unmaximized", "window", w.Title)
	}
	return true
}

// RequestClose opens the retention dialog of window i.
func (m *Desktop) RequestClose(i int) bool {
	w := m.Window(i)
	if w == nil {
		return false
	}
	if _, open := m.DialogWindow(); open != nil {
		return false
	}
	if !w.Ctl.RequestClose() {
		return false
	}
	m.LogInfo("close requested, asking the visitor to stay", "window", w.Title)
	return true
}

// DismissDialog closes any open retention dialog.
func (m *Desktop) DismissDialog(stayed bool) bool {
	dismissed := false
	for _, w := range m.Windows {
		if w.Ctl.DismissDialog() {
			dismissed = true
			m.LogInfo("retention dialog dismissed", "window", w.Title, "stayed", stayed)
		}
	}
	return dismissed
}

// handleTimer applies a controller timer. A snap-back glides the drawn
// window home during the settle period.
func (m *Desktop) handleTimer(t window.Timer) tea.Cmd {
	if m.closed {
		return nil
	}
	_, w := m.WindowByID(t.WindowID)
	if w == nil {
		return nil
	}

	before := w.Ctl.State()
	next, ok := w.Ctl.Fire(t)
	after := w.Ctl.State()

	if ok {
		m.LogDebug("window snapped back", "window", w.Title)
		cmds := []tea.Cmd{ScheduleTimer(next)}
		if m.cfg.Appearance.AnimationsOn() && next.Delay > 0 && !before.Offset.IsZero() {
			cmds = append(cmds, m.startAnimation(ui.NewGlideAnimation(w.ID, before.Offset, next.Delay, m.now())))
		}
		return tea.Batch(cmds...)
	}
	if before.Moved && !after.Moved {
		m.LogDebug("window settled", "window", w.Title)
	}
	return nil
}

// Rect returns the drawn rectangle of window i.
func (m *Desktop) Rect(i int) (uv.Rectangle, bool) {
	p, ok := m.placementOf(i)
	return p.Rect, ok
}
