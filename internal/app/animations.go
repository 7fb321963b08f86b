package app

import (
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/ui"
)

// TickerMsg advances running animations.
type TickerMsg time.Time

// TickCmd schedules the next animation frame.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.AnimationFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// HasActiveAnimations returns true if there are any active animations
func (m *Desktop) HasActiveAnimations() bool {
	return len(m.Animations) > 0
}

// animationFor returns the running animation of window id with one of the
// given types.
func (m *Desktop) animationFor(id string, types ...ui.AnimationType) *ui.Animation {
	for _, a := range m.Animations {
		if a.WindowID == id && slices.Contains(types, a.Type) {
			return a
		}
	}
	return nil
}

// cancelAnimations stops the animations of window id with the given types.
func (m *Desktop) cancelAnimations(id string, types ...ui.AnimationType) {
	m.Animations = slices.DeleteFunc(m.Animations, func(a *ui.Animation) bool {
		return a.WindowID == id && slices.Contains(types, a.Type)
	})
}

// startAnimation adds a and returns the tick command when no tick is
// already pending.
func (m *Desktop) startAnimation(a *ui.Animation) tea.Cmd {
	a.Update(m.now())
	m.Animations = append(m.Animations, a)
	if m.ticking {
		return nil
	}
	m.ticking = true
	return TickCmd()
}

// UpdateAnimations advances every animation to now and drops the finished
// ones.
func (m *Desktop) UpdateAnimations(now time.Time) {
	m.Animations = slices.DeleteFunc(m.Animations, func(a *ui.Animation) bool {
		return a.Update(now)
	})
}

func (m *Desktop) handleTick(t time.Time) tea.Cmd {
	m.UpdateAnimations(t)
	if !m.HasActiveAnimations() || m.closed {
		m.ticking = false
		return nil
	}
	return TickCmd()
}
