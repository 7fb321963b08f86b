// Package window implements the interaction state machine of a single
// floating window: dragging, resizing, minimize, maximize, the retention
// dialog behind the close button and the delayed snap-back after a drag that
// went too far.
//
// A Controller never touches the terminal and never starts goroutines. Its
// methods are called from one event loop, and time is handled by returning
// Timer values that the caller schedules and feeds back through Fire.
package window

import "github.com/Gaurav-Gosain/deskfolio/internal/geom"

// gesture is the data captured once when a drag or resize starts.
type gesture struct {
	edge          geom.Edge
	anchorPointer geom.Point
	anchorOffset  geom.Point
	anchorSize    geom.Size
}

// Controller owns the State of one window.
type Controller struct {
	id     string
	policy Policy
	state  State
	g      gesture
	seq    uint64
	closed bool
}

// NewController returns a controller in Normal mode with default geometry.
func NewController(id string, policy Policy) *Controller {
	return &Controller{id: id, policy: policy}
}

// ID returns the window ID stamped on every Timer.
func (c *Controller) ID() string { return c.id }

// Policy returns the limits the controller was created with.
func (c *Controller) Policy() Policy { return c.policy }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }

// Edge returns the edge held by the current resize, or 0.
func (c *Controller) Edge() geom.Edge {
	if c.state.Mode != Resizing {
		return 0
	}
	return c.g.edge
}

// PendingTimers returns the number of timers the controller will still honor.
func (c *Controller) PendingTimers() int {
	if c.state.pending == TimerNone {
		return 0
	}
	return 1
}

func (c *Controller) canStartGesture() bool {
	return !c.closed && c.state.Mode == Normal && !c.state.Coarse
}

// cancelTimers invalidates any timer already handed out.
func (c *Controller) cancelTimers() {
	c.seq++
	c.state.pending = TimerNone
}

func (c *Controller) schedule(kind TimerKind) Timer {
	c.seq++
	c.state.pending = kind
	t := Timer{WindowID: c.id, Kind: kind, Seq: c.seq}
	switch kind {
	case TimerReturn:
		t.Delay = c.policy.ReturnDelay(geom.DistanceFromOrigin(c.state.Offset))
	case TimerSettle:
		t.Delay = c.policy.SettleDelay
	}
	return t
}

// BeginDrag starts a drag with the mouse at p. It reports false and changes
// nothing unless the window is in Normal mode with a fine pointer.
func (c *Controller) BeginDrag(p geom.Point) bool {
	if !c.canStartGesture() {
		return false
	}
	c.cancelTimers()
	c.g = gesture{anchorPointer: p, anchorOffset: c.state.Offset}
	c.state.Mode = Dragging
	c.state.Moved = true
	return true
}

// BeginResize starts a resize on edge with the mouse at p. natural is the
// size the window currently renders at, used as the anchor when no explicit
// size is set yet.
func (c *Controller) BeginResize(edge geom.Edge, p geom.Point, natural geom.Size) bool {
	if !c.canStartGesture() || !edge.Valid() {
		return false
	}
	c.cancelTimers()
	anchor := c.state.Size
	if anchor.Auto() {
		anchor = natural
	}
	c.g = gesture{
		edge:          edge,
		anchorPointer: p,
		anchorOffset:  c.state.Offset,
		anchorSize:    anchor,
	}
	c.state.Mode = Resizing
	return true
}

// Move updates the active gesture with the mouse at p.
func (c *Controller) Move(p geom.Point) bool {
	switch c.state.Mode {
	case Dragging:
		c.state.Offset = geom.DragOffset(c.g.anchorOffset, c.g.anchorPointer, p)
	case Resizing:
		minSize := geom.Size{Width: c.policy.MinWidth, Height: c.policy.MinHeight}
		c.state.Size, c.state.Offset = geom.Resize(c.g.edge, c.g.anchorSize, c.g.anchorOffset, c.g.anchorPointer, p, minSize)
		c.state.Moved = true
	default:
		return false
	}
	return true
}

// End finishes the active gesture. When a drag leaves the window further than
// MaxDistance from its flow position, the returned Timer starts the
// snap-back.
func (c *Controller) End() (Timer, bool) {
	switch c.state.Mode {
	case Dragging:
		c.state.Mode = Normal
		c.g = gesture{}
		if geom.DistanceFromOrigin(c.state.Offset) > c.policy.MaxDistance {
			return c.schedule(TimerReturn), true
		}
	case Resizing:
		c.state.Mode = Normal
		c.g = gesture{}
	}
	return Timer{}, false
}

// CancelGesture abandons a drag or resize in place, without snap-back.
func (c *Controller) CancelGesture() bool {
	if !c.state.Mode.Gesturing() {
		return false
	}
	c.state.Mode = Normal
	c.g = gesture{}
	return true
}

// ToggleMinimize collapses or restores the window. Collapsing drops any
// pending snap-back and resets the geometry, so a restored window reopens at
// its flow position.
func (c *Controller) ToggleMinimize() bool {
	if c.closed || c.state.Mode.Gesturing() {
		return false
	}
	if c.state.Mode == Minimized {
		c.state.Mode = Normal
		return true
	}
	c.cancelTimers()
	c.state.Offset = geom.Point{}
	c.state.Size = geom.Size{}
	c.state.Moved = false
	c.state.Mode = Minimized
	return true
}

// ToggleMaximize switches between Maximized and Normal. Offset and size are
// left alone so un-maximizing returns to the same place.
func (c *Controller) ToggleMaximize() bool {
	if c.closed || c.state.Mode.Gesturing() {
		return false
	}
	if c.state.Mode == Maximized {
		c.state.Mode = Normal
	} else {
		c.state.Mode = Maximized
	}
	return true
}

// RequestClose opens the retention dialog. The window stays where it is.
func (c *Controller) RequestClose() bool {
	if c.closed || c.state.Dialog {
		return false
	}
	c.state.Dialog = true
	return true
}

// DismissDialog closes the retention dialog.
func (c *Controller) DismissDialog() bool {
	if c.closed || !c.state.Dialog {
		return false
	}
	c.state.Dialog = false
	return true
}

// SetCoarse records whether the viewport is below the coarse breakpoint.
// Turning coarse on abandons any gesture in progress; the result reports
// whether that happened.
func (c *Controller) SetCoarse(coarse bool) bool {
	if c.closed {
		return false
	}
	c.state.Coarse = coarse
	if coarse {
		return c.CancelGesture()
	}
	return false
}

// Fire applies a timer previously returned by End or Fire. A Return timer
// sends the window back to its flow position and yields the Settle timer;
// a Settle timer clears Moved. Stale timers are ignored.
func (c *Controller) Fire(t Timer) (Timer, bool) {
	if c.closed || t.WindowID != c.id || t.Seq != c.seq || t.Kind != c.state.pending {
		return Timer{}, false
	}
	switch t.Kind {
	case TimerReturn:
		c.state.Offset = geom.Point{}
		c.state.Size = geom.Size{}
		return c.schedule(TimerSettle), true
	case TimerSettle:
		c.state.pending = TimerNone
		c.state.Moved = false
	}
	return Timer{}, false
}

// Close releases the controller: any gesture is dropped, every outstanding
// timer becomes stale and all later calls are no-ops.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.CancelGesture()
	c.cancelTimers()
	c.closed = true
}
