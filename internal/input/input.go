package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
)

// HandleInput routes key and mouse messages to the desktop. It is
// registered with app.SetInputHandler at start-up.
func HandleInput(msg tea.Msg, m *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKey(msg, m)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, m)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, m)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, m)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, m)
	}
	return m, nil
}

// Filter drops pointer motion and release events while no gesture is
// listening for them. It is meant for tea.WithFilter.
func Filter(model tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseMotionMsg, tea.MouseReleaseMsg:
	default:
		return msg
	}

	m, ok := model.(*app.Desktop)
	if !ok {
		return msg
	}
	if m.Bindings.Listening() {
		return msg
	}
	return nil
}
