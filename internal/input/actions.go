package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	// Windows
	d.Register("next_window", handleNextWindow)
	d.Register("prev_window", handlePrevWindow)
	d.Register("minimize_window", handleMinimizeWindow)
	d.Register("maximize_window", handleMaximizeWindow)
	d.Register("close_window", handleCloseWindow)

	// Dialog
	d.Register("dismiss_dialog", handleDismissDialog)

	// System
	d.Register("scroll_up", handleScrollUp)
	d.Register("scroll_down", handleScrollDown)
	d.Register("toggle_help", handleToggleHelp)
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("quit", handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, m)
	}
	return m, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Window Action Handlers
// ============================================================================

func handleNextWindow(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	m.FocusNext(false)
	return m, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	m.FocusNext(true)
	return m, nil
}

func handleMinimizeWindow(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	return m, m.ToggleMinimize(m.FocusedWindow)
}

func handleMaximizeWindow(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	m.ToggleMaximize(m.FocusedWindow)
	return m, nil
}

func handleCloseWindow(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	m.RequestClose(m.FocusedWindow)
	return m, nil
}

func handleDismissDialog(msg tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	// Escape reads as "maybe later"; the other bindings accept the offer.
	m.DismissDialog(msg.String() != "esc")
	return m, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleScrollUp(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	m.Scroll(-1)
	return m, nil
}

func handleScrollDown(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	m.Scroll(1)
	return m, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	m.ShowHelp = !m.ShowHelp
	if m.ShowHelp {
		m.HelpScrollOffset = 0
	}
	return m, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	wasShowing := m.ShowLogs
	m.ShowLogs = !m.ShowLogs
	if m.ShowLogs && !wasShowing {
		m.LogInfo("Log viewer opened")
		// Open at the newest entries.
		m.ScrollLogs(m.Logs.Len())
	}
	return m, nil
}

func handleQuit(_ tea.KeyPressMsg, m *app.Desktop) (*app.Desktop, tea.Cmd) {
	// Close help if showing
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}
	m.Cleanup()
	return m, tea.Quit
}
