package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// clipToViewport cuts the part of a block drawn at (x, y) that falls outside
// a viewport of the given size. It returns the visible block and where to
// draw it; the block is empty when nothing is visible.
func clipToViewport(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	blockHeight := len(lines)
	blockWidth := 0
	for _, l := range lines {
		blockWidth = max(blockWidth, ansi.StringWidth(l))
	}

	if x+blockWidth <= 0 || x >= viewportWidth || y+blockHeight <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop := max(-y, 0)
	clipLeft := max(-x, 0)
	finalX, finalY := max(x, 0), max(y, 0)

	visible := lines[clipTop:]
	if maxRows := viewportHeight - finalY; maxRows < len(visible) {
		visible = visible[:maxRows]
	}

	right := clipLeft + viewportWidth - finalX
	if clipLeft == 0 && blockWidth <= right {
		return strings.Join(visible, "\n"), finalX, finalY
	}

	clipped := make([]string, len(visible))
	for i, line := range visible {
		clipped[i] = ansi.Cut(line, clipLeft, right)
	}
	return strings.Join(clipped, "\n"), finalX, finalY
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := ansi.StringWidth(s); w > width {
		s = ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

// center places s in the middle of width cells, truncating with an
// ellipsis when it does not fit.
func center(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	pad := width - ansi.StringWidth(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
