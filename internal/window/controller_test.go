package window

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

func newTestController() *Controller {
	return NewController("w1", PixelPolicy())
}

func drag(c *Controller, from, to geom.Point) (Timer, bool) {
	c.BeginDrag(from)
	c.Move(to)
	return c.End()
}

func TestDragWithinDistanceKeepsOffset(t *testing.T) {
	for dx := -200; dx <= 200; dx += 25 {
		for dy := -200; dy <= 200; dy += 25 {
			if math.Hypot(float64(dx), float64(dy)) > 200 {
				continue
			}
			c := newTestController()
			start := geom.Point{X: 400, Y: 300}
			timer, ok := drag(c, start, start.Add(geom.Point{X: dx, Y: dy}))
			if ok {
				t.Fatalf("(%d,%d): unexpected snap-back timer %+v", dx, dy, timer)
			}
			s := c.State()
			if s.Offset != (geom.Point{X: dx, Y: dy}) {
				t.Fatalf("(%d,%d): offset = %+v", dx, dy, s.Offset)
			}
			if s.Mode != Normal || !s.Moved || s.Returning() {
				t.Fatalf("(%d,%d): unexpected state %+v", dx, dy, s)
			}
			if c.PendingTimers() != 0 {
				t.Fatalf("(%d,%d): %d pending timers", dx, dy, c.PendingTimers())
			}
		}
	}
}

func TestDragContinuesFromPreviousOffset(t *testing.T) {
	c := newTestController()
	drag(c, geom.Point{X: 10, Y: 10}, geom.Point{X: 60, Y: 30})
	drag(c, geom.Point{X: 100, Y: 100}, geom.Point{X: 90, Y: 110})

	if got, want := c.State().Offset, (geom.Point{X: 40, Y: 30}); got != want {
		t.Errorf("offset = %+v, want %+v", got, want)
	}
}

func TestSnapBack(t *testing.T) {
	tests := []struct {
		name      string
		delta     geom.Point
		wantDelay time.Duration
	}{
		{"just past threshold", geom.Point{X: 201, Y: 0}, 201 * time.Millisecond},
		{"diagonal", geom.Point{X: 300, Y: 400}, 500 * time.Millisecond},
		{"far", geom.Point{X: -1500, Y: 0}, 1500 * time.Millisecond},
		{"capped", geom.Point{X: 0, Y: 5000}, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			start := geom.Point{X: 50, Y: 50}
			ret, ok := drag(c, start, start.Add(tt.delta))
			if !ok {
				t.Fatal("expected a snap-back timer")
			}
			if ret.Kind != TimerReturn || ret.WindowID != "w1" {
				t.Fatalf("unexpected timer %+v", ret)
			}
			if ret.Delay != tt.wantDelay {
				t.Errorf("delay = %s, want %s", ret.Delay, tt.wantDelay)
			}
			if !c.State().Returning() || c.PendingTimers() != 1 {
				t.Fatalf("window should be returning, state %+v", c.State())
			}
			if c.State().Offset != tt.delta {
				t.Errorf("offset before return = %+v, want %+v", c.State().Offset, tt.delta)
			}

			settle, ok := c.Fire(ret)
			if !ok || settle.Kind != TimerSettle || settle.Delay != 500*time.Millisecond {
				t.Fatalf("expected 500ms settle timer, got %+v (%v)", settle, ok)
			}
			s := c.State()
			if !s.Offset.IsZero() || !s.Size.Auto() {
				t.Errorf("geometry not reset: %+v", s)
			}
			if !s.Moved {
				t.Error("Moved cleared before settle")
			}

			if _, ok := c.Fire(settle); ok {
				t.Error("settle should not chain another timer")
			}
			s = c.State()
			if s.Moved || s.Returning() || s.Settling() || c.PendingTimers() != 0 {
				t.Errorf("state after settle = %+v", s)
			}
		})
	}
}

func TestReturnDelay(t *testing.T) {
	p := PixelPolicy()
	tests := []struct {
		distance float64
		want     time.Duration
	}{
		{0, 0},
		{100, 100 * time.Millisecond},
		{250, 250 * time.Millisecond},
		{2000, 2 * time.Second},
		{10000, 2 * time.Second},
	}
	for _, tt := range tests {
		if got := p.ReturnDelay(tt.distance); got != tt.want {
			t.Errorf("ReturnDelay(%g) = %s, want %s", tt.distance, got, tt.want)
		}
	}

	if got := CellPolicy().ReturnDelay(30); got != 300*time.Millisecond {
		t.Errorf("cell ReturnDelay(30) = %s, want 300ms", got)
	}
}

func TestNewDragCancelsSnapBack(t *testing.T) {
	c := newTestController()
	ret, ok := drag(c, geom.Point{}, geom.Point{X: 500})
	if !ok {
		t.Fatal("expected snap-back")
	}

	if !c.BeginDrag(geom.Point{X: 500}) {
		t.Fatal("drag should start while returning")
	}
	if c.PendingTimers() != 0 {
		t.Fatal("drag start should cancel the snap-back")
	}
	c.Move(geom.Point{X: 510})

	before := c.State()
	if _, ok := c.Fire(ret); ok {
		t.Error("stale timer produced a follow-up")
	}
	if c.State() != before {
		t.Errorf("stale timer changed state: %+v -> %+v", before, c.State())
	}
}

func TestStaleSettleIgnoredAfterNewGesture(t *testing.T) {
	c := newTestController()
	ret, _ := drag(c, geom.Point{}, geom.Point{Y: 900})
	settle, _ := c.Fire(ret)

	c.BeginDrag(geom.Point{})
	c.Move(geom.Point{X: 5})
	c.End()

	c.Fire(settle)
	if !c.State().Moved {
		t.Error("stale settle cleared Moved of a window dragged again")
	}
}

func TestTimerForOtherWindowIgnored(t *testing.T) {
	c := newTestController()
	ret, _ := drag(c, geom.Point{}, geom.Point{X: 900})
	ret.WindowID = "other"
	if _, ok := c.Fire(ret); ok {
		t.Error("timer for another window was applied")
	}
	if !c.State().Returning() {
		t.Error("pending snap-back was lost")
	}
}

func TestResizeEdges(t *testing.T) {
	natural := geom.Size{Width: 500, Height: 400}
	start := geom.Point{X: 1000, Y: 1000}

	tests := []struct {
		name       string
		edge       geom.Edge
		delta      geom.Point
		wantSize   geom.Size
		wantOffset geom.Point
	}{
		{"east widens only", geom.EdgeE, geom.Point{X: 50, Y: 70}, geom.Size{Width: 550, Height: 400}, geom.Point{}},
		{"west widens and shifts", geom.EdgeW, geom.Point{X: -50, Y: 70}, geom.Size{Width: 550, Height: 400}, geom.Point{X: -50}},
		{"south grows", geom.EdgeS, geom.Point{X: 9, Y: 30}, geom.Size{Width: 500, Height: 430}, geom.Point{}},
		{"north shrinks and shifts", geom.EdgeN, geom.Point{Y: 30}, geom.Size{Width: 500, Height: 370}, geom.Point{Y: 30}},
		{"south-west", geom.EdgeSW, geom.Point{X: 20, Y: 20}, geom.Size{Width: 480, Height: 420}, geom.Point{X: 20}},
		{"width clamps east", geom.EdgeE, geom.Point{X: -450}, geom.Size{Width: 300, Height: 400}, geom.Point{}},
		{"width clamps west", geom.EdgeW, geom.Point{X: 450}, geom.Size{Width: 300, Height: 400}, geom.Point{X: 200}},
		{"height clamps north", geom.EdgeN, geom.Point{Y: 999}, geom.Size{Width: 500, Height: 200}, geom.Point{Y: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			if !c.BeginResize(tt.edge, start, natural) {
				t.Fatal("resize did not start")
			}
			c.Move(start.Add(tt.delta))
			if _, ok := c.End(); ok {
				t.Error("resize must not schedule a snap-back")
			}
			s := c.State()
			if s.Size != tt.wantSize {
				t.Errorf("size = %+v, want %+v", s.Size, tt.wantSize)
			}
			if s.Offset != tt.wantOffset {
				t.Errorf("offset = %+v, want %+v", s.Offset, tt.wantOffset)
			}
			if !s.Moved || s.Mode != Normal {
				t.Errorf("state = %+v", s)
			}
		})
	}
}

func TestResizeKeepsFarEdgeFixed(t *testing.T) {
	natural := geom.Size{Width: 500, Height: 400}
	start := geom.Point{X: 100, Y: 100}

	c := newTestController()
	c.BeginResize(geom.EdgeE, start, natural)
	for dx := -400; dx <= 400; dx += 10 {
		c.Move(start.Add(geom.Point{X: dx}))
		if c.State().Offset.X != 0 {
			t.Fatalf("east resize moved the west edge to %d", c.State().Offset.X)
		}
	}
	c.End()

	c = newTestController()
	c.BeginResize(geom.EdgeW, start, natural)
	east := natural.Width
	for dx := -400; dx <= 400; dx += 10 {
		c.Move(start.Add(geom.Point{X: dx}))
		s := c.State()
		if got := s.Offset.X + s.Size.Width; got != east {
			t.Fatalf("dx=%d: east edge at %d, want %d", dx, got, east)
		}
		if s.Size.Width < 300 {
			t.Fatalf("dx=%d: width %d below minimum", dx, s.Size.Width)
		}
	}
}

func TestResizeUsesExplicitSizeAsAnchor(t *testing.T) {
	c := newTestController()
	c.BeginResize(geom.EdgeSE, geom.Point{}, geom.Size{Width: 400, Height: 300})
	c.Move(geom.Point{X: 100, Y: 100})
	c.End()

	c.BeginResize(geom.EdgeE, geom.Point{}, geom.Size{Width: 1, Height: 1})
	c.Move(geom.Point{X: 10})
	c.End()

	if got, want := c.State().Size, (geom.Size{Width: 510, Height: 400}); got != want {
		t.Errorf("size = %+v, want %+v", got, want)
	}
}

func TestResizeFromSmallNaturalSizeMeetsMinimum(t *testing.T) {
	policy := CellPolicy()
	natural := geom.Size{Width: 57, Height: policy.MinHeight - 1}

	for _, edge := range []geom.Edge{geom.EdgeE, geom.EdgeW, geom.EdgeS, geom.EdgeN} {
		t.Run(edge.String(), func(t *testing.T) {
			c := NewController("w1", policy)
			start := geom.Point{X: 58, Y: 3}
			if !c.BeginResize(edge, start, natural) {
				t.Fatal("resize did not start")
			}
			c.Move(start.Add(geom.Point{X: 4}))
			c.End()

			s := c.State().Size
			if s.Auto() {
				t.Fatal("resize left the size auto")
			}
			if s.Width < policy.MinWidth || s.Height < policy.MinHeight {
				t.Errorf("size %+v below the minimum %dx%d", s, policy.MinWidth, policy.MinHeight)
			}
		})
	}
}

func TestResizeRejectsInvalidEdge(t *testing.T) {
	c := newTestController()
	if c.BeginResize(0, geom.Point{}, geom.Size{Width: 400, Height: 300}) {
		t.Error("empty edge started a resize")
	}
	if c.BeginResize(geom.EdgeN|geom.EdgeS, geom.Point{}, geom.Size{Width: 400, Height: 300}) {
		t.Error("opposing edges started a resize")
	}
	if c.State().Mode != Normal {
		t.Errorf("mode = %s", c.State().Mode)
	}
}

func TestMinimizeResetsGeometry(t *testing.T) {
	c := newTestController()
	c.BeginResize(geom.EdgeSE, geom.Point{}, geom.Size{Width: 450, Height: 260})
	c.Move(geom.Point{X: 50, Y: 40})
	c.End()
	drag(c, geom.Point{}, geom.Point{X: 120, Y: 40})

	s := c.State()
	if s.Offset != (geom.Point{X: 120, Y: 40}) || s.Size != (geom.Size{Width: 500, Height: 300}) {
		t.Fatalf("setup failed: %+v", s)
	}

	if !c.ToggleMinimize() {
		t.Fatal("minimize failed")
	}
	s = c.State()
	if s.Mode != Minimized || !s.Offset.IsZero() || !s.Size.Auto() || s.Moved {
		t.Errorf("minimized state = %+v", s)
	}

	if !c.ToggleMinimize() {
		t.Fatal("restore failed")
	}
	s = c.State()
	if s.Mode != Normal || !s.Offset.IsZero() || !s.Size.Auto() {
		t.Errorf("restored state = %+v", s)
	}
}

func TestMinimizeCancelsSnapBack(t *testing.T) {
	c := newTestController()
	ret, _ := drag(c, geom.Point{}, geom.Point{X: 900})
	c.ToggleMinimize()

	if c.PendingTimers() != 0 {
		t.Error("minimize left a pending timer")
	}
	before := c.State()
	c.Fire(ret)
	if c.State() != before {
		t.Error("cancelled snap-back still fired")
	}
}

func TestMaximizePreservesGeometry(t *testing.T) {
	c := newTestController()
	c.BeginResize(geom.EdgeE, geom.Point{}, geom.Size{Width: 400, Height: 300})
	c.Move(geom.Point{X: 20})
	c.End()
	drag(c, geom.Point{}, geom.Point{X: 30, Y: -10})
	before := c.State()

	if !c.ToggleMaximize() {
		t.Fatal("maximize failed")
	}
	s := c.State()
	if s.Mode != Maximized || s.Offset != before.Offset || s.Size != before.Size {
		t.Errorf("maximized state = %+v, before %+v", s, before)
	}

	c.ToggleMaximize()
	if c.State() != before {
		t.Errorf("after restore = %+v, want %+v", c.State(), before)
	}
}

func TestModeTransitions(t *testing.T) {
	c := newTestController()
	c.ToggleMinimize()
	if !c.ToggleMaximize() || c.State().Mode != Maximized {
		t.Fatalf("minimized -> maximized failed: %s", c.State().Mode)
	}
	if !c.ToggleMinimize() || c.State().Mode != Minimized {
		t.Fatalf("maximized -> minimized failed: %s", c.State().Mode)
	}
}

func TestGestureRefused(t *testing.T) {
	natural := geom.Size{Width: 400, Height: 300}
	tests := []struct {
		name  string
		setup func(c *Controller)
	}{
		{"maximized", func(c *Controller) { c.ToggleMaximize() }},
		{"minimized", func(c *Controller) { c.ToggleMinimize() }},
		{"coarse", func(c *Controller) { c.SetCoarse(true) }},
		{"closed", func(c *Controller) { c.Close() }},
		{"already dragging", func(c *Controller) { c.BeginDrag(geom.Point{}) }},
		{"already resizing", func(c *Controller) { c.BeginResize(geom.EdgeS, geom.Point{}, natural) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			tt.setup(c)
			before := c.State()
			if c.BeginDrag(geom.Point{X: 3, Y: 3}) {
				t.Error("drag started")
			}
			if c.BeginResize(geom.EdgeE, geom.Point{X: 3, Y: 3}, natural) {
				t.Error("resize started")
			}
			if c.State() != before {
				t.Errorf("state changed: %+v -> %+v", before, c.State())
			}
		})
	}
}

func TestMoveAndEndOutsideGesture(t *testing.T) {
	c := newTestController()
	if c.Move(geom.Point{X: 5}) {
		t.Error("move outside a gesture reported a change")
	}
	if _, ok := c.End(); ok {
		t.Error("end outside a gesture scheduled a timer")
	}
	if c.State() != (State{}) {
		t.Errorf("state = %+v", c.State())
	}
}

func TestControlsDuringGestureRefused(t *testing.T) {
	c := newTestController()
	c.BeginDrag(geom.Point{})
	if c.ToggleMinimize() || c.ToggleMaximize() {
		t.Error("mode toggled mid-drag")
	}
	if c.State().Mode != Dragging {
		t.Errorf("mode = %s", c.State().Mode)
	}
}

func TestCoarseCancelsGesture(t *testing.T) {
	c := newTestController()
	c.BeginDrag(geom.Point{})
	c.Move(geom.Point{X: 50})

	if !c.SetCoarse(true) {
		t.Fatal("coarse should cancel the drag")
	}
	s := c.State()
	if s.Mode != Normal || !s.Coarse || s.Offset != (geom.Point{X: 50}) {
		t.Errorf("state = %+v", s)
	}
	if c.SetCoarse(false) {
		t.Error("leaving coarse reported a cancel")
	}
}

func TestCloseDialog(t *testing.T) {
	c := newTestController()
	drag(c, geom.Point{}, geom.Point{X: 40, Y: 40})
	c.ToggleMaximize()
	before := c.State()

	if !c.RequestClose() {
		t.Fatal("close request ignored")
	}
	s := c.State()
	if !s.Dialog || s.Mode != before.Mode || s.Offset != before.Offset || s.Size != before.Size {
		t.Errorf("close changed the window: %+v", s)
	}
	if c.RequestClose() {
		t.Error("second close request reported a change")
	}
	if !c.DismissDialog() || c.State().Dialog {
		t.Error("dismiss failed")
	}
	if c.DismissDialog() {
		t.Error("dismiss without a dialog reported a change")
	}
}

func TestCloseMidDrag(t *testing.T) {
	c := newTestController()
	c.BeginDrag(geom.Point{})
	c.Move(geom.Point{X: 80})
	c.Close()

	before := c.State()
	if before.Mode.Gesturing() {
		t.Fatalf("gesture survived close: %s", before.Mode)
	}
	c.Move(geom.Point{X: 300})
	c.End()
	c.ToggleMinimize()
	c.ToggleMaximize()
	c.RequestClose()
	c.SetCoarse(true)
	if c.State() != before {
		t.Errorf("closed controller mutated: %+v -> %+v", before, c.State())
	}
	if c.PendingTimers() != 0 {
		t.Error("closed controller has pending timers")
	}
}

func TestCloseDuringSnapBack(t *testing.T) {
	c := newTestController()
	ret, _ := drag(c, geom.Point{}, geom.Point{X: 700})
	c.Close()
	c.Close()

	before := c.State()
	if _, ok := c.Fire(ret); ok {
		t.Error("timer fired after close")
	}
	if c.State() != before {
		t.Error("timer mutated a closed controller")
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := CellPolicy().Validate(); err != nil {
		t.Errorf("CellPolicy invalid: %v", err)
	}
	if err := PixelPolicy().Validate(); err != nil {
		t.Errorf("PixelPolicy invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{"zero min width", func(p *Policy) { p.MinWidth = 0 }},
		{"negative min height", func(p *Policy) { p.MinHeight = -1 }},
		{"negative distance", func(p *Policy) { p.MaxDistance = -5 }},
		{"zero step", func(p *Policy) { p.ReturnStep = 0 }},
		{"zero step delay", func(p *Policy) { p.ReturnStepDelay = 0 }},
		{"negative cap", func(p *Policy) { p.MaxReturnDelay = -time.Second }},
		{"negative settle", func(p *Policy) { p.SettleDelay = -time.Second }},
		{"negative breakpoint", func(p *Policy) { p.CoarseBelow = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CellPolicy()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidPolicy) {
				t.Errorf("Validate() = %v, want ErrInvalidPolicy", err)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	modes := map[Mode]string{
		Normal:    "normal",
		Dragging:  "dragging",
		Resizing:  "resizing",
		Minimized: "minimized",
		Maximized: "maximized",
		Mode(42):  "unknown",
	}
	for m, want := range modes {
		if m.String() != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), m.String(), want)
		}
	}
}
