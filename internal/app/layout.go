package app

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/ui"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// bodyPadding is the blank column between a side border and the body text.
const bodyPadding = 1

// Placement is where one window is drawn this frame.
type Placement struct {
	Index  int
	Window *Window
	State  window.State
	// Slot is the window's place in the flow; Rect is where it is drawn,
	// which differs by the drag offset or when maximized.
	Slot uv.Rectangle
	Rect uv.Rectangle
	// Lines is the wrapped body and Rows the number of body rows shown.
	Lines []string
	Rows  int
}

// ScreenHeight is the number of rows above the status bar.
func (m *Desktop) ScreenHeight() int {
	return max(m.Height-config.StatusBarHeight, 0)
}

// Columns returns the number of flow columns for the current width.
func (m *Desktop) Columns() int {
	if m.Width >= config.TwoColumnMinWidth && m.Width >= m.policy.CoarseBelow {
		return 2
	}
	return 1
}

func (m *Desktop) columnWidth(cols int) int {
	usable := m.Width - 2*config.PageMarginX - config.FlowGap*(cols-1)
	return max(usable/cols, config.WindowChromeCols+2*bodyPadding+1)
}

// wrapBody wraps body to the text width of a window that is width cells wide.
func wrapBody(body string, width int) []string {
	textWidth := width - config.WindowChromeCols - 2*bodyPadding
	if textWidth <= 0 {
		return nil
	}
	body = strings.ReplaceAll(body, "\t", "    ")
	return strings.Split(ansi.Wrap(body, textWidth, ""), "\n")
}

// Layout places every window. Flow windows are stacked per column in
// window order; a maximized window keeps its slot and is drawn centered.
func (m *Desktop) Layout() []Placement {
	placements, _ := m.layout()
	return placements
}

// layout also returns the height of the page.
func (m *Desktop) layout() ([]Placement, int) {
	cols := m.Columns()
	colWidth := m.columnWidth(cols)
	colY := make([]int, cols)
	for i := range colY {
		colY[i] = config.PageMarginY
	}

	placements := make([]Placement, 0, len(m.Windows))
	for i, w := range m.Windows {
		st := w.Ctl.State()
		col := i % cols

		width := colWidth
		explicit := !st.Size.Auto() && !st.Coarse
		if explicit {
			width = st.Size.Width
		}
		lines := wrapBody(w.Body, width)

		rows := len(lines)
		switch {
		case st.Mode == window.Minimized:
			rows = 0
		case explicit:
			rows = max(st.Size.Height-config.WindowChromeRows, 0)
		}
		if a := m.animationFor(w.ID, ui.AnimationCollapse, ui.AnimationExpand); a != nil {
			rows = a.Current().Rows
		}

		height := config.WindowChromeRows + rows
		x := config.PageMarginX + col*(colWidth+config.FlowGap)
		slot := uv.Rect(x, colY[col]-m.ScrollY, width, height)
		colY[col] += height + config.FlowGap

		p := Placement{
			Index:  i,
			Window: w,
			State:  st,
			Slot:   slot,
			Rect:   slot,
			Lines:  lines,
			Rows:   rows,
		}
		switch {
		case st.Mode == window.Maximized:
			p.Rect, p.Lines = m.maximizedRect(w)
			p.Rows = p.Rect.Dy() - config.WindowChromeRows
		case st.Moved && !st.Coarse:
			off := m.displayOffset(w.ID, st.Offset)
			p.Rect = slot.Add(uv.Pos(off.X, off.Y))
		}
		placements = append(placements, p)
	}

	page := config.PageMarginY
	for _, y := range colY {
		page = max(page, y)
	}
	return placements, page
}

// displayOffset is the offset drawn this frame: the glide animation while
// a snapped-back window settles, the controller's offset otherwise.
func (m *Desktop) displayOffset(id string, offset geom.Point) geom.Point {
	if a := m.animationFor(id, ui.AnimationGlide); a != nil {
		return a.Current().Offset
	}
	return offset
}

// maximizedRect centers a window on the screen, at most
// MaximizedWidthRatio of the width (capped by the configured maximum) and
// MaximizedHeightRatio of the height.
func (m *Desktop) maximizedRect(w *Window) (uv.Rectangle, []string) {
	screen := m.ScreenHeight()
	width := min(m.cfg.Appearance.MaximizedMaxWidth, int(float64(m.Width)*config.MaximizedWidthRatio))
	width = max(width, min(m.Width, config.WindowChromeCols+2*bodyPadding+1))
	lines := wrapBody(w.Body, width)

	maxHeight := int(float64(screen) * config.MaximizedHeightRatio)
	height := min(config.WindowChromeRows+len(lines), maxHeight)
	height = max(height, min(config.WindowChromeRows, screen))

	x := (m.Width - width) / 2
	y := (screen - height) / 2
	return uv.Rect(x, y, width, height), lines
}

// PageHeight returns the height of the flow, margins included.
func (m *Desktop) PageHeight() int {
	_, page := m.layout()
	return page + config.PageMarginY
}

// MaxScroll returns the largest useful ScrollY.
func (m *Desktop) MaxScroll() int {
	return max(m.PageHeight()-m.ScreenHeight(), 0)
}

// Scroll moves the page by delta rows, clamped to the page.
func (m *Desktop) Scroll(delta int) bool {
	next := min(max(m.ScrollY+delta, 0), m.MaxScroll())
	if next == m.ScrollY {
		return false
	}
	m.ScrollY = next
	return true
}

// placementOf returns the placement of window i.
func (m *Desktop) placementOf(i int) (Placement, bool) {
	for _, p := range m.Layout() {
		if p.Index == i {
			return p, true
		}
	}
	return Placement{}, false
}
