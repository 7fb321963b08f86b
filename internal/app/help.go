package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// helpRows is the number of table rows shown at once, so the overlay keeps
// its size when switching tabs.
const helpRows = 9

// HelpSections returns the sections shown in the help overlay.
func (m *Desktop) HelpSections() []config.KeybindingSection {
	return config.GetKeybindings(m.Keys)
}

// SwitchHelpSection moves the active help tab by delta, wrapping around.
func (m *Desktop) SwitchHelpSection(delta int) {
	n := len(m.HelpSections())
	if n == 0 {
		return
	}
	m.HelpSection = ((m.HelpSection+delta)%n + n) % n
	m.HelpScrollOffset = 0
}

// ScrollHelp scrolls the active help tab by delta rows.
func (m *Desktop) ScrollHelp(delta int) {
	sections := m.HelpSections()
	if m.HelpSection >= len(sections) {
		return
	}
	maxScroll := max(len(sections[m.HelpSection].Bindings)-helpRows, 0)
	m.HelpScrollOffset = min(max(m.HelpScrollOffset+delta, 0), maxScroll)
}

// RenderHelpMenu draws the help overlay centered in width by height.
func (m *Desktop) RenderHelpMenu(width, height int) string {
	sections := m.HelpSections()
	if len(sections) == 0 {
		return ""
	}
	m.HelpSection = min(max(m.HelpSection, 0), len(sections)-1)
	active := sections[m.HelpSection]

	boxWidth := min(72, max(width-6, 20))
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).Render(renderHelpTabs(sections, m.HelpSection)), "")

	tbl, total := renderHelpTable(active, m.HelpScrollOffset, boxWidth)
	lines = append(lines, lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).Render(tbl))

	hasScroll := total > helpRows
	if hasScroll {
		info := fmt.Sprintf("Row %d-%d of %d", m.HelpScrollOffset+1, min(m.HelpScrollOffset+helpRows, total), total)
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HelpGray()).Italic(true).
			Width(boxWidth).Align(lipgloss.Center).Render(info))
	} else {
		lines = append(lines, "", "")
	}
	lines = append(lines, "", lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).Render(m.renderHelpFooter(hasScroll)))

	box := lipgloss.NewStyle().
		Border(config.BorderForStyle(m.cfg.Appearance.BorderStyle)).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderHelpTabs renders one tab per section, highlighting the active one.
func renderHelpTabs(sections []config.KeybindingSection, activeIdx int) string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HelpTitle()).
		Underline(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(theme.HelpGray()).
		Padding(0, 1)

	tabs := make([]string, len(sections))
	for i, s := range sections {
		if i == activeIdx {
			tabs[i] = activeStyle.Render(s.Title)
		} else {
			tabs[i] = inactiveStyle.Render(s.Title)
		}
	}
	return strings.Join(tabs, " ")
}

// renderHelpTable renders a section's bindings, padded to helpRows rows.
// It returns the table and the number of bindings in the section.
func renderHelpTable(section config.KeybindingSection, scrollOffset, width int) (string, int) {
	total := len(section.Bindings)
	start := min(max(scrollOffset, 0), total)
	end := min(start+helpRows, total)

	keyWidth := max(width/3, 8)
	rows := make([][]string, 0, helpRows)
	for _, b := range section.Bindings[start:end] {
		rows = append(rows, []string{ansi.Truncate(b.Key, keyWidth, "…"), b.Description})
	}
	for len(rows) < helpRows {
		rows = append(rows, []string{"", ""})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HelpTitle()).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Padding(0, 1)
	actionStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.HelpGray())).
		Headers("Keys", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return keyStyle
			}
			return actionStyle
		})
	return t.Render(), total
}

// renderHelpFooter lists the keys that drive the overlay itself.
func (m *Desktop) renderHelpFooter(hasScroll bool) string {
	instructions := []string{"←/→: Sections"}
	if hasScroll {
		instructions = append(instructions, "↑/↓: Scroll")
	}
	if keys := m.Keys.GetKeysForDisplay("toggle_help"); keys != "" {
		instructions = append(instructions, keys+": Close help")
	}
	return lipgloss.NewStyle().
		Foreground(theme.HelpGray()).
		Italic(true).
		Render(strings.Join(instructions, "  •  "))
}
