package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
)

// HandleKey handles a key press. Open overlays see the key first; an open
// retention dialog only lets dialog and system actions through.
func HandleKey(msg tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	key := msg.String()

	// ctrl+c always quits, whatever it is bound to.
	if key == "ctrl+c" {
		m.Cleanup()
		return m, tea.Quit
	}

	action := m.Keys.GetAction(key)

	if m.ShowHelp {
		return handleHelpKey(key, action, msg, m)
	}
	if m.ShowLogs {
		return handleLogsKey(key, action, msg, m)
	}

	if _, w := m.DialogWindow(); w != nil {
		switch action {
		case "dismiss_dialog", "toggle_help", "toggle_logs", "quit":
			return GetDispatcher().Dispatch(action, msg, m)
		}
		return m, nil
	}

	// A maximized window is restored by escape as well as its own binding.
	if key == "esc" {
		if i, w := m.MaximizedWindow(); w != nil {
			m.ToggleMaximize(i)
			return m, nil
		}
	}

	if action == "" {
		return m, nil
	}
	return GetDispatcher().Dispatch(action, msg, m)
}

// handleHelpKey drives the help overlay.
func handleHelpKey(key, action string, msg tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	switch {
	case key == "esc" || action == "toggle_help":
		m.ShowHelp = false
		m.HelpScrollOffset = 0
	case key == "left" || key == "shift+tab":
		m.SwitchHelpSection(-1)
	case key == "right" || key == "tab":
		m.SwitchHelpSection(1)
	case key == "up" || action == "scroll_up":
		m.ScrollHelp(-1)
	case key == "down" || action == "scroll_down":
		m.ScrollHelp(1)
	case action == "quit":
		return GetDispatcher().Dispatch(action, msg, m)
	}
	return m, nil
}

// handleLogsKey drives the log viewer.
func handleLogsKey(key, action string, msg tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	switch {
	case key == "esc" || action == "toggle_logs":
		m.ShowLogs = false
	case key == "up" || action == "scroll_up":
		m.ScrollLogs(-1)
	case key == "down" || action == "scroll_down":
		m.ScrollLogs(1)
	case key == "pgup":
		m.ScrollLogs(-10)
	case key == "pgdown":
		m.ScrollLogs(10)
	case key == "home" || key == "g":
		m.LogScrollOffset = 0
	case key == "end" || key == "G":
		m.ScrollLogs(m.Logs.Len())
	case action == "toggle_help":
		m.ShowLogs = false
		m.ShowHelp = true
	case action == "quit":
		m.Cleanup()
		return m, tea.Quit
	}
	return m, nil
}
