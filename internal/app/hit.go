package app

import (
	"slices"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// HitKind is the part of the screen under the mouse.
type HitKind int

const (
	HitNone HitKind = iota
	HitTitle
	HitEdge
	HitBody
	HitMinimize
	HitMaximize
	HitClose
	HitBackdrop
	HitDialogStay
	HitDialogLater
	HitDialogBox
	HitDialogOutside
	HitStatusBar
)

// Hit is the result of HitTest. Index is the window under the mouse, or -1.
type Hit struct {
	Kind  HitKind
	Index int
	Edge  geom.Edge
}

// Columns of the three title bar controls, relative to the window.
const (
	minimizeCol = 2
	maximizeCol = 4
	closeCol    = 6
)

// HitTest resolves a cell to what it belongs to. An open dialog captures
// everything; a maximized window and its backdrop come next; then flow
// windows from top to bottom.
func (m *Desktop) HitTest(x, y int) Hit {
	pos := uv.Pos(x, y)

	if _, w := m.DialogWindow(); w != nil {
		d := m.dialogLayout()
		switch {
		case pos.In(d.Stay):
			return Hit{Kind: HitDialogStay, Index: -1}
		case pos.In(d.Later):
			return Hit{Kind: HitDialogLater, Index: -1}
		case pos.In(d.Box):
			return Hit{Kind: HitDialogBox, Index: -1}
		}
		return Hit{Kind: HitDialogOutside, Index: -1}
	}

	if y >= m.ScreenHeight() {
		return Hit{Kind: HitStatusBar, Index: -1}
	}

	placements := m.Layout()
	if i, _ := m.MaximizedWindow(); i >= 0 {
		p := placements[i]
		if pos.In(p.Rect) {
			return classify(p, pos)
		}
		return Hit{Kind: HitBackdrop, Index: i}
	}

	slices.SortStableFunc(placements, func(a, b Placement) int { return b.Window.Z - a.Window.Z })
	for _, p := range placements {
		if pos.In(p.Rect) {
			return classify(p, pos)
		}
	}
	return Hit{Kind: HitNone, Index: -1}
}

// classify resolves a position inside a window's rectangle.
func classify(p Placement, pos uv.Position) Hit {
	rx := pos.X - p.Rect.Min.X
	ry := pos.Y - p.Rect.Min.Y
	w, h := p.Rect.Dx(), p.Rect.Dy()

	if gripsActive(p.State) {
		var edge geom.Edge
		if ry == 0 {
			edge |= geom.EdgeN
		}
		if ry == h-1 {
			edge |= geom.EdgeS
		}
		if rx == 0 {
			edge |= geom.EdgeW
		}
		if rx == w-1 {
			edge |= geom.EdgeE
		}
		if edge.Valid() {
			return Hit{Kind: HitEdge, Index: p.Index, Edge: edge}
		}
	}

	if ry == config.TitleBarRow && rx > 0 && rx < w-1 {
		switch rx {
		case minimizeCol:
			return Hit{Kind: HitMinimize, Index: p.Index}
		case maximizeCol:
			return Hit{Kind: HitMaximize, Index: p.Index}
		case closeCol:
			return Hit{Kind: HitClose, Index: p.Index}
		}
		return Hit{Kind: HitTitle, Index: p.Index}
	}
	return Hit{Kind: HitBody, Index: p.Index}
}

// gripsActive reports whether the resize grips of a window respond.
func gripsActive(st window.State) bool {
	return st.Mode == window.Normal && !st.Coarse
}
