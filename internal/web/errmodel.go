package web

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// errorModel is shown to a visitor whose desktop could not be built. Any
// key closes the session.
type errorModel struct {
	err error
}

func (m errorModel) Init() tea.Cmd { return nil }

func (m errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m errorModel) View() tea.View {
	return tea.NewView(m.Render())
}

// Render returns the error screen as a string.
func (m errorModel) Render() string {
	title := lipgloss.NewStyle().Bold(true).Render("deskfolio failed to start")
	return title + "\n\n" + m.err.Error() + "\n\nPress any key to close."
}
