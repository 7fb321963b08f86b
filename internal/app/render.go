package app

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// View returns the rendered view.
func (m *Desktop) View() tea.View {
	view := tea.NewView(m.Render())
	view.AltScreen = true
	// Cell motion only reports movement while a button is held, which is
	// all a drag or resize needs.
	view.MouseMode = tea.MouseModeCellMotion
	view.WindowTitle = "deskfolio"
	return view
}

// Render draws the whole screen as a string.
func (m *Desktop) Render() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(lipgloss.NewCompositor(m.Layers()...))
	return canvas.Render()
}

// Layers builds every layer of the frame.
func (m *Desktop) Layers() []*lipgloss.Layer {
	screen := m.ScreenHeight()
	placements := m.Layout()
	layers := make([]*lipgloss.Layer, 0, len(placements)+8)

	// Stack flow windows by focus order; their z stays below the overlays.
	order := slices.Clone(placements)
	slices.SortStableFunc(order, func(a, b Placement) int { return a.Window.Z - b.Window.Z })

	maxIdx, _ := m.MaximizedWindow()
	for rank, p := range order {
		z := rank + 1
		if p.Index == maxIdx {
			z = config.ZIndexMaximized
		}
		content := m.renderWindow(p, p.Index == m.FocusedWindow)
		clipped, x, y := clipToViewport(content, p.Rect.Min.X, p.Rect.Min.Y, m.Width, screen)
		if clipped == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(clipped).X(x).Y(y).Z(z).ID(p.Window.ID))
	}

	if maxIdx >= 0 {
		layers = append(layers, lipgloss.NewLayer(m.renderBackdrop()).
			X(0).Y(0).Z(config.ZIndexBackdrop).ID("backdrop"))
	}

	if _, w := m.DialogWindow(); w != nil {
		d := m.dialogLayout()
		layers = append(layers,
			lipgloss.NewLayer(m.renderBackdrop()).X(0).Y(0).Z(config.ZIndexDialog-1).ID("dialog-backdrop"),
			lipgloss.NewLayer(m.renderDialog(d)).X(d.Box.Min.X).Y(d.Box.Min.Y).Z(config.ZIndexDialog).ID("dialog"),
		)
	}

	if m.Height > screen {
		layers = append(layers, lipgloss.NewLayer(m.renderStatusBar()).
			X(0).Y(screen).Z(config.ZIndexStatusBar).ID("status"))
	}

	layers = append(layers, m.renderNotifications()...)

	if m.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(m.renderLogViewer()).
			X(0).Y(0).Z(config.ZIndexLogs).ID("logs"))
	}
	if m.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(m.RenderHelpMenu(m.Width, screen)).
			X(0).Y(0).Z(config.ZIndexHelp).ID("help"))
	}
	return layers
}

// renderWindow draws a window: border with grips, the title bar with its
// controls and the wrapped body.
func (m *Desktop) renderWindow(p Placement, focused bool) string {
	border := config.BorderForStyle(m.cfg.Appearance.BorderStyle)
	width, height := p.Rect.Dx(), p.Rect.Dy()
	inner := max(width-config.WindowChromeCols, 0)

	var borderColor color.Color
	switch {
	case p.State.Mode.Gesturing():
		borderColor = theme.BorderGesture()
	case focused:
		borderColor = theme.BorderFocused()
	default:
		borderColor = theme.BorderUnfocused()
	}
	bs := lipgloss.NewStyle().Foreground(borderColor)
	gs := lipgloss.NewStyle().Foreground(theme.Grip())
	bg := lipgloss.NewStyle().Background(theme.WindowBg())
	grips := gripsActive(p.State)

	// edge draws one horizontal border line with an optional grip in the middle.
	edge := func(left, fill, right string) string {
		if !grips {
			return bs.Render(left + strings.Repeat(fill, inner) + right)
		}
		mid := inner / 2
		return gs.Render(left) +
			bs.Render(strings.Repeat(fill, mid)) +
			gs.Render(config.GetGripChar()) +
			bs.Render(strings.Repeat(fill, max(inner-mid-1, 0))) +
			gs.Render(right)
	}
	side := func(row int, glyph string) string {
		if grips && row == height/2 {
			return gs.Render(config.GetGripChar())
		}
		return bs.Render(glyph)
	}

	lines := make([]string, 0, height)
	lines = append(lines, edge(border.TopLeft, border.Top, border.TopRight))
	lines = append(lines, side(1, border.Left)+bg.Render(m.titleBar(p, inner))+side(1, border.Right))

	body := bg.Foreground(theme.BodyFg())
	pad := strings.Repeat(" ", bodyPadding)
	for r := range p.Rows {
		line := ""
		if r < len(p.Lines) {
			line = p.Lines[r]
		}
		row := r + config.WindowChromeRows - 1
		text := pad + fit(line, max(inner-2*bodyPadding, 0)) + pad
		lines = append(lines, side(row, border.Left)+body.Render(fit(text, inner))+side(row, border.Right))
	}
	lines = append(lines, edge(border.BottomLeft, border.Bottom, border.BottomRight))
	return strings.Join(lines, "\n")
}

// titleBar renders the three controls followed by the centered title.
func (m *Desktop) titleBar(p Placement, inner int) string {
	maximize := config.GetButtonMaximizeChar()
	if p.State.Mode == window.Maximized {
		maximize = config.GetButtonRestoreChar()
	}
	controls := " " +
		lipgloss.NewStyle().Foreground(theme.ButtonMinimize()).Render(config.GetButtonMinimizeChar()) + " " +
		lipgloss.NewStyle().Foreground(theme.ButtonMaximize()).Render(maximize) + " " +
		lipgloss.NewStyle().Foreground(theme.ButtonClose()).Render(config.GetButtonCloseChar()) + " "

	rest := inner - ansi.StringWidth(controls)
	if rest <= 0 {
		return fit(controls, inner)
	}
	// Reserve the controls' width on the right too so the title is centered
	// on the window.
	title := center(p.Window.Title, max(rest-ansi.StringWidth(controls), 1))
	return fit(controls+lipgloss.NewStyle().Bold(true).Foreground(theme.TitleFg()).Render(title), inner)
}

// renderBackdrop fills the screen above the status bar.
func (m *Desktop) renderBackdrop() string {
	row := strings.Repeat(config.GetBackdropChar(), m.Width)
	style := lipgloss.NewStyle().Foreground(theme.BackdropFg()).Background(theme.BackdropBg())
	rows := make([]string, m.ScreenHeight())
	for i := range rows {
		rows[i] = style.Render(row)
	}
	return strings.Join(rows, "\n")
}

// renderStatusBar draws the bottom row: the focused window on the left,
// host statistics and the clock on the right.
func (m *Desktop) renderStatusBar() string {
	base := lipgloss.NewStyle().Background(theme.StatusBg()).Foreground(theme.StatusFg())
	accent := base.Foreground(theme.StatusAccent()).Bold(true)
	dim := base.Foreground(theme.StatusDimmed())

	left := accent.Render(" deskfolio ")
	if w := m.GetFocusedWindow(); w != nil {
		left += base.Render(" "+w.Title+" ") + dim.Render(modeLabel(w.Ctl.State())+" ")
	}
	if m.Coarse() {
		left += dim.Render("compact ")
	}

	parts := m.statusStats()
	if !m.cfg.Appearance.HideClock {
		parts = append(parts, strings.TrimSpace(config.GetStatusIconClock()+" "+m.now().Format("15:04:05")))
	}
	if keys := m.Keys.GetKeysForDisplay("toggle_help"); keys != "" {
		parts = append(parts, keys+" help")
	}
	right := dim.Render(" " + strings.Join(parts, "  ") + " ")

	gap := m.Width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 0 {
		return ansi.Truncate(left+right, m.Width, "")
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}

// modeLabel names what a window is doing for the status bar.
func modeLabel(st window.State) string {
	switch {
	case st.Returning():
		return "returning"
	case st.Settling():
		return "settling"
	case st.Dialog:
		return "closing?"
	}
	return st.Mode.String()
}

// renderNotifications stacks notifications in the top right corner.
func (m *Desktop) renderNotifications() []*lipgloss.Layer {
	if len(m.Notifications) == 0 {
		return nil
	}
	border := config.BorderForStyle(m.cfg.Appearance.BorderStyle)
	maxWidth := min(max(m.Width-8, 20), config.MaxNotificationWidth)

	var layers []*lipgloss.Layer
	y := 1
	for _, n := range m.Notifications {
		var accent color.Color
		var icon string
		switch n.Type {
		case "error":
			accent, icon = theme.NotificationError(), "✕"
		case "warning":
			accent, icon = theme.NotificationWarning(), "!"
		case "success":
			accent, icon = theme.NotificationSuccess(), "✓"
		default:
			accent, icon = theme.NotificationInfo(), "i"
		}

		text := ansi.Wrap(n.Message, maxWidth-8, "")
		box := lipgloss.NewStyle().
			Border(border).
			BorderForeground(accent).
			Background(theme.NotificationBg()).
			Foreground(theme.NotificationFg()).
			Padding(0, 1).
			Render(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(icon) + "  " + text)

		x := max(m.Width-lipgloss.Width(box)-2, 0)
		layers = append(layers, lipgloss.NewLayer(box).
			X(x).Y(y).Z(config.ZIndexNotifications).
			ID(fmt.Sprintf("notif-%s", n.ID)))
		y += lipgloss.Height(box)
	}
	return layers
}

// logsPerPage returns the number of entries the log viewer shows at once.
func (m *Desktop) logsPerPage() int {
	// border (2) + padding (2) + title and blank (2) + blank and hint (2)
	return max(m.ScreenHeight()-8, 1)
}

// ScrollLogs moves the log viewer by delta entries.
func (m *Desktop) ScrollLogs(delta int) {
	maxScroll := max(m.Logs.Len()-m.logsPerPage(), 0)
	m.LogScrollOffset = min(max(m.LogScrollOffset+delta, 0), maxScroll)
}

// renderLogViewer draws the centered log viewer.
func (m *Desktop) renderLogViewer() string {
	entries := m.Logs.Entries()
	perPage := m.logsPerPage()
	maxScroll := max(len(entries)-perPage, 0)
	m.LogScrollOffset = min(max(m.LogScrollOffset, 0), maxScroll)

	width := min(config.LogViewerWidth, max(m.Width-2, 10))
	textWidth := max(width-6, 1)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true).Render("Session Log"),
		"",
	}
	end := min(m.LogScrollOffset+perPage, len(entries))
	for _, e := range entries[m.LogScrollOffset:end] {
		var c color.Color
		switch {
		case e.Level >= log.ErrorLevel:
			c = theme.LogViewerError()
		case e.Level >= log.WarnLevel:
			c = theme.LogViewerWarn()
		case e.Level >= log.InfoLevel:
			c = theme.LogViewerInfo()
		default:
			c = theme.LogViewerDebug()
		}
		level := lipgloss.NewStyle().Foreground(c).Render(fmt.Sprintf("%-5s", strings.ToUpper(e.Level.String())))
		line := fmt.Sprintf("%s %s %s", e.Time.Format("15:04:05"), level, e.Message)
		lines = append(lines, ansi.Truncate(line, textWidth, "…"))
	}
	if len(entries) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("Nothing logged yet."))
	}

	hint := "esc to close"
	if maxScroll > 0 {
		hint = fmt.Sprintf("%d-%d of %d, ↑/↓ to scroll, esc to close", m.LogScrollOffset+1, end, len(entries))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HelpGray()).Render(hint))

	box := lipgloss.NewStyle().
		Border(config.BorderForStyle(m.cfg.Appearance.BorderStyle)).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.Width, m.ScreenHeight(), lipgloss.Center, lipgloss.Center, box)
}
