package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/Gaurav-Gosain/deskfolio/internal/ui"
)

const nudgeMessage = "session_active: you seem interested in the stack. " +
	"Should we run connect.sh and build something together?"

// ReloadMsg carries a config change from the watcher.
type ReloadMsg config.Reload

// NudgeMsg shows the engagement nudge.
type NudgeMsg struct{}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, m *Desktop) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the clock, the host sampler, the config listener and the
// engagement nudge.
func (m *Desktop) Init() tea.Cmd {
	cmds := []tea.Cmd{
		ClockCmd(),
		SampleCmd(m.sampler, 0),
		ListenForReload(m.reloads),
	}
	if d, ok := m.cfg.Appearance.NudgeDelay(); ok {
		cmds = append(cmds, NudgeCmd(d))
	}
	return tea.Batch(cmds...)
}

// ListenForReload waits for the next config reload. It returns nil once the
// channel is closed.
func ListenForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg(r)
	}
}

// NudgeCmd fires the engagement nudge after d.
func NudgeCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return NudgeMsg{} })
}

// Update handles all incoming messages and updates the desktop state.
func (m *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case TimerMsg:
		return m, m.handleTimer(msg.Timer)

	case TickerMsg:
		return m, m.handleTick(time.Time(msg))

	case ClockMsg:
		m.pruneNotifications(time.Time(msg))
		return m, ClockCmd()

	case SampleMsg:
		return m, m.handleSample(msg)

	case ReloadMsg:
		m.applyReload(config.Reload(msg))
		return m, ListenForReload(m.reloads)

	case NudgeMsg:
		d, ok := m.cfg.Appearance.NudgeDelay()
		if !ok {
			return m, nil
		}
		m.ShowNotification(nudgeMessage, "info", 3*config.NotificationDuration)
		m.LogDebug("engagement nudge shown")
		return m, NudgeCmd(d)
	}

	if inputHandler != nil {
		return inputHandler(msg, m)
	}
	return m, nil
}

// applyReload swaps in a reloaded config. Theme, keybindings and panels
// apply at once; the window policy only applies to windows created from now
// on.
func (m *Desktop) applyReload(r config.Reload) {
	if r.Err != nil {
		m.LogError("config reload failed", "err", r.Err)
		m.ShowNotification("Config reload failed, keeping the current settings", "error", config.NotificationDuration)
		return
	}

	// Every subscriber receives the same reload; work on a copy.
	cfg := new(config.UserConfig)
	*cfg = *r.Config
	config.ApplyOverrides(m.overrides, cfg)
	if cfg.Appearance.Theme != m.cfg.Appearance.Theme {
		if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
			m.LogWarn("theme not applied", "theme", cfg.Appearance.Theme, "err", err)
			cfg.Appearance.Theme = m.cfg.Appearance.Theme
		}
	}
	if policy, err := cfg.Window.Policy(); err == nil {
		m.policy = policy
	}
	m.cfg = cfg
	m.Keys = config.NewKeybindRegistry(cfg)

	for i, p := range cfg.Panels {
		if i < len(m.Windows) {
			m.Windows[i].Title = p.Title
			m.Windows[i].Body = p.Body
			continue
		}
		m.addWindow(p)
	}
	for _, w := range m.Windows[min(len(cfg.Panels), len(m.Windows)):] {
		m.releaseGesture(w.ID)
		m.cancelAnimations(w.ID, ui.AnimationCollapse, ui.AnimationExpand, ui.AnimationGlide)
		w.Ctl.Close()
	}
	m.Windows = m.Windows[:min(len(cfg.Panels), len(m.Windows))]
	m.FocusedWindow = min(m.FocusedWindow, max(len(m.Windows)-1, 0))
	m.ScrollY = min(m.ScrollY, m.MaxScroll())

	for _, w := range cfg.Warnings {
		m.LogWarn("config warning", "issue", w.String())
	}
	m.LogInfo("config reloaded", "windows", len(m.Windows))
	m.ShowNotification("Config reloaded", "success", config.NotificationDuration)
}
