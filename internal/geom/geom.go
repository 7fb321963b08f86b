// Package geom provides the pure arithmetic behind window dragging and resizing.
// It has no Bubble Tea dependency so the math can be tested on its own.
package geom

import (
	"math"
	"strings"
)

// Point is a position or a translation in cells.
type Point struct {
	X, Y int
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Size is an explicit window size. The zero Size means "auto": the window
// takes its natural size from the layout.
type Size struct {
	Width, Height int
}

// Auto reports whether the size is unset.
func (s Size) Auto() bool {
	return s.Width == 0 && s.Height == 0
}

// Edge is a set of window edges. A corner is the union of two edges.
type Edge uint8

const (
	// EdgeN is the top edge.
	EdgeN Edge = 1 << iota
	// EdgeS is the bottom edge.
	EdgeS
	// EdgeE is the right edge.
	EdgeE
	// EdgeW is the left edge.
	EdgeW
)

// Corner edges.
const (
	EdgeNE = EdgeN | EdgeE
	EdgeNW = EdgeN | EdgeW
	EdgeSE = EdgeS | EdgeE
	EdgeSW = EdgeS | EdgeW
)

// AllEdges lists the eight grip directions in render order.
var AllEdges = []Edge{EdgeNW, EdgeN, EdgeNE, EdgeE, EdgeSE, EdgeS, EdgeSW, EdgeW}

// Has reports whether e contains every edge in other.
func (e Edge) Has(other Edge) bool {
	return other != 0 && e&other == other
}

// Valid reports whether e names one of the eight compass directions.
func (e Edge) Valid() bool {
	if e == 0 || e&^(EdgeN|EdgeS|EdgeE|EdgeW) != 0 {
		return false
	}
	return !e.Has(EdgeN|EdgeS) && !e.Has(EdgeE|EdgeW)
}

// String returns the compass name of e ("n", "se", ...).
func (e Edge) String() string {
	if !e.Valid() {
		return ""
	}
	var sb strings.Builder
	if e.Has(EdgeN) {
		sb.WriteByte('n')
	}
	if e.Has(EdgeS) {
		sb.WriteByte('s')
	}
	if e.Has(EdgeE) {
		sb.WriteByte('e')
	}
	if e.Has(EdgeW) {
		sb.WriteByte('w')
	}
	return sb.String()
}

// ParseEdge converts a compass name into an Edge. Unknown names return 0.
func ParseEdge(name string) Edge {
	var e Edge
	for _, r := range strings.ToLower(name) {
		var bit Edge
		switch r {
		case 'n':
			bit = EdgeN
		case 's':
			bit = EdgeS
		case 'e':
			bit = EdgeE
		case 'w':
			bit = EdgeW
		default:
			return 0
		}
		if e&bit != 0 {
			return 0
		}
		e |= bit
	}
	if !e.Valid() {
		return 0
	}
	return e
}

// DragOffset returns the window offset for a drag that started at anchorPointer
// with the window at anchorOffset. The result is not clamped: windows may be
// dragged off screen.
func DragOffset(anchorOffset, anchorPointer, current Point) Point {
	return anchorOffset.Add(current.Sub(anchorPointer))
}

// Resize applies a resize gesture on the given edges.
//
// Far edges (E, S) only change the size. Near edges (W, N) change the size and
// move the offset by the same amount so the opposite edge stays fixed. Each
// dimension is floored at minSize, including the one no edge touches, so the
// result is always a valid explicit size. When a near edge hits the floor the
// offset for that axis stays at anchorOffset + anchorSize - minSize.
func Resize(edge Edge, anchorSize Size, anchorOffset, anchorPointer, current Point, minSize Size) (Size, Point) {
	delta := current.Sub(anchorPointer)
	size := Size{
		Width:  max(anchorSize.Width, minSize.Width),
		Height: max(anchorSize.Height, minSize.Height),
	}
	offset := anchorOffset

	switch {
	case edge.Has(EdgeE):
		size.Width = max(anchorSize.Width+delta.X, minSize.Width)
	case edge.Has(EdgeW):
		size.Width, offset.X = shrinkNear(anchorSize.Width, anchorOffset.X, delta.X, minSize.Width)
	}

	switch {
	case edge.Has(EdgeS):
		size.Height = max(anchorSize.Height+delta.Y, minSize.Height)
	case edge.Has(EdgeN):
		size.Height, offset.Y = shrinkNear(anchorSize.Height, anchorOffset.Y, delta.Y, minSize.Height)
	}

	return size, offset
}

func shrinkNear(anchorLen, anchorPos, delta, minLen int) (length, pos int) {
	length = anchorLen - delta
	if length < minLen {
		// An anchor already below the floor keeps its fixed edge as well.
		return minLen, anchorPos + anchorLen - minLen
	}
	return length, anchorPos + delta
}

// DistanceFromOrigin returns the Euclidean norm of offset.
func DistanceFromOrigin(offset Point) float64 {
	return math.Hypot(float64(offset.X), float64(offset.Y))
}
