package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

const (
	dialogTitle    = "Hold up!"
	dialogSubtitle = "You're about to miss something cool..."
	dialogMessage  = "Instead of closing this window, why not check out the projects?"
	dialogStay     = " Okay, I'll stay! "
	dialogLater    = " Maybe later "
	dialogInset    = 2
	dialogGap      = 2
)

// dialogGeometry holds the screen rectangles of the retention dialog.
type dialogGeometry struct {
	Box   uv.Rectangle
	Stay  uv.Rectangle
	Later uv.Rectangle
	lines []string // wrapped message
}

// dialogLayout centers the dialog on the screen. The buttons share the
// second to last inner row.
func (m *Desktop) dialogLayout() dialogGeometry {
	width := min(config.DialogWidth, max(m.Width, 1))
	inner := width - 2
	lines := strings.Split(ansi.Wrap(dialogMessage, max(inner-2*dialogInset, 1), ""), "\n")

	// border, blank, title, subtitle, blank, message, blank, buttons, blank, border
	height := 2 + 4 + len(lines) + 3
	x := (m.Width - width) / 2
	y := max((m.ScreenHeight()-height)/2, 0)

	buttonsY := y + height - 3
	stayX := x + 1 + dialogInset
	stayW := ansi.StringWidth(dialogStay)
	laterX := stayX + stayW + dialogGap
	return dialogGeometry{
		Box:   uv.Rect(x, y, width, height),
		Stay:  uv.Rect(stayX, buttonsY, stayW, 1),
		Later: uv.Rect(laterX, buttonsY, ansi.StringWidth(dialogLater), 1),
		lines: lines,
	}
}

// renderDialog draws the retention dialog box.
func (m *Desktop) renderDialog(d dialogGeometry) string {
	border := config.BorderForStyle(m.cfg.Appearance.BorderStyle)
	inner := d.Box.Dx() - 2
	borderStyle := lipgloss.NewStyle().Foreground(theme.DialogBorder())
	textStyle := lipgloss.NewStyle().Foreground(theme.BodyFg())
	pad := strings.Repeat(" ", dialogInset)

	row := func(content string) string {
		content = ansi.Truncate(pad+content, inner, "")
		fill := max(inner-ansi.StringWidth(content), 0)
		return borderStyle.Render(border.Left) + content + strings.Repeat(" ", fill) + borderStyle.Render(border.Right)
	}

	var rows []string
	rows = append(rows, borderStyle.Render(border.TopLeft+strings.Repeat(border.Top, inner)+border.TopRight))
	rows = append(rows, row(""))
	rows = append(rows, row(lipgloss.NewStyle().Bold(true).Foreground(theme.TitleFg()).Render(dialogTitle)))
	rows = append(rows, row(lipgloss.NewStyle().Foreground(theme.DialogSecondaryFg()).Render(dialogSubtitle)))
	rows = append(rows, row(""))
	for _, l := range d.lines {
		rows = append(rows, row(textStyle.Render(l)))
	}
	rows = append(rows, row(""))

	stay := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.DialogPrimaryFg()).
		Background(theme.DialogPrimaryBg()).
		Render(dialogStay)
	later := lipgloss.NewStyle().
		Foreground(theme.DialogSecondaryFg()).
		Render(dialogLater)
	rows = append(rows, row(stay+strings.Repeat(" ", dialogGap)+later))
	rows = append(rows, row(""))
	rows = append(rows, borderStyle.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return strings.Join(rows, "\n")
}
