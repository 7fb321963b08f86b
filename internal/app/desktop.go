// Package app implements the deskfolio desktop: a Bubble Tea model holding
// one floating window per portfolio panel, the overlays drawn above them and
// the status bar.
package app

import (
	"fmt"
	"time"

	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/input/binding"
	"github.com/Gaurav-Gosain/deskfolio/internal/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/sysinfo"
	"github.com/Gaurav-Gosain/deskfolio/internal/ui"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// Window is one floating panel.
type Window struct {
	ID    string
	Title string
	Body  string
	Z     int
	Ctl   *window.Controller
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// Options configures a new Desktop.
type Options struct {
	// Config is the loaded config; nil uses the defaults.
	Config *config.UserConfig
	// Overrides are the CLI flags, re-applied to every reloaded config.
	Overrides config.Overrides
	// Logger receives desktop events; nil discards them.
	Logger *log.Logger
	// Sampler feeds the status bar. nil disables host statistics.
	Sampler *sysinfo.Sampler
	// Reloads delivers config changes. Unsubscribe is called by Cleanup.
	Reloads     <-chan config.Reload
	Unsubscribe func()
	// Width and Height are the initial viewport, when already known.
	Width, Height int
	// Now replaces time.Now in tests.
	Now func() time.Time
}

// Desktop is the Bubble Tea model of one visitor's desktop. Every field is
// owned by the program's update loop.
type Desktop struct {
	Width  int
	Height int

	Windows       []*Window
	FocusedWindow int
	ScrollY       int

	// Bindings holds the motion and release subscription of the window
	// being dragged or resized.
	Bindings *binding.Bindings
	release  binding.Release

	ShowHelp         bool
	HelpSection      int
	HelpScrollOffset int
	ShowLogs         bool
	LogScrollOffset  int

	Animations    []*ui.Animation
	Notifications []Notification
	Logs          *logging.Ring
	Keys          *config.KeybindRegistry

	Sample     sysinfo.Sample
	CPUHistory []float64

	cfg         *config.UserConfig
	overrides   config.Overrides
	policy      window.Policy
	logger      *log.Logger
	sampler     *sysinfo.Sampler
	reloads     <-chan config.Reload
	unsubscribe func()
	now         func() time.Time
	nextZ       int
	ticking     bool
	closed      bool
}

// NewDesktop builds a desktop with one window per configured panel.
func NewDesktop(opts Options) (*Desktop, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	policy, err := cfg.Window.Policy()
	if err != nil {
		return nil, fmt.Errorf("failed to build window policy: %w", err)
	}

	m := &Desktop{
		Bindings:    binding.New(),
		Logs:        logging.NewRing(config.MaxLogEntries),
		Keys:        config.NewKeybindRegistry(cfg),
		cfg:         cfg,
		overrides:   opts.Overrides,
		policy:      policy,
		logger:      opts.Logger,
		sampler:     opts.Sampler,
		reloads:     opts.Reloads,
		unsubscribe: opts.Unsubscribe,
		now:         opts.Now,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}

	for _, p := range cfg.Panels {
		m.addWindow(p)
	}
	for _, w := range cfg.Warnings {
		m.LogWarn("config warning", "issue", w.String())
	}

	if opts.Width > 0 && opts.Height > 0 {
		m.Resize(opts.Width, opts.Height)
	}
	return m, nil
}

func (m *Desktop) addWindow(p config.Panel) *Window {
	m.nextZ++
	w := &Window{
		ID:    uuid.NewString(),
		Title: p.Title,
		Body:  p.Body,
		Z:     m.nextZ,
	}
	w.Ctl = window.NewController(w.ID, m.policy)
	if m.Width > 0 {
		w.Ctl.SetCoarse(m.Width < m.policy.CoarseBelow)
	}
	m.Windows = append(m.Windows, w)
	return w
}

// Config returns the configuration currently applied.
func (m *Desktop) Config() *config.UserConfig { return m.cfg }

// Policy returns the policy given to newly created windows.
func (m *Desktop) Policy() window.Policy { return m.policy }

// Closed reports whether Cleanup has run.
func (m *Desktop) Closed() bool { return m.closed }

// Window returns the window at index i, or nil.
func (m *Desktop) Window(i int) *Window {
	if i < 0 || i >= len(m.Windows) {
		return nil
	}
	return m.Windows[i]
}

// WindowByID returns the index and window with the given ID.
func (m *Desktop) WindowByID(id string) (int, *Window) {
	for i, w := range m.Windows {
		if w.ID == id {
			return i, w
		}
	}
	return -1, nil
}

// GetFocusedWindow returns the focused window, or nil.
func (m *Desktop) GetFocusedWindow() *Window {
	return m.Window(m.FocusedWindow)
}

// FocusWindow focuses the window at index i and raises it above the others.
func (m *Desktop) FocusWindow(i int) {
	w := m.Window(i)
	if w == nil {
		return
	}
	m.FocusedWindow = i
	if w.Z != m.nextZ {
		m.nextZ++
		w.Z = m.nextZ
	}
}

// FocusNext cycles focus forward, or backward when reverse is set.
func (m *Desktop) FocusNext(reverse bool) {
	n := len(m.Windows)
	if n == 0 {
		return
	}
	step := 1
	if reverse {
		step = n - 1
	}
	m.FocusWindow((m.FocusedWindow + step) % n)
}

// DialogWindow returns the window whose retention dialog is open.
func (m *Desktop) DialogWindow() (int, *Window) {
	for i, w := range m.Windows {
		if w.Ctl.State().Dialog {
			return i, w
		}
	}
	return -1, nil
}

// MaximizedWindow returns the window that is maximized. When several are,
// the topmost wins.
func (m *Desktop) MaximizedWindow() (int, *Window) {
	idx := -1
	var top *Window
	for i, w := range m.Windows {
		if w.Ctl.State().Mode == window.Maximized && (top == nil || w.Z > top.Z) {
			idx, top = i, w
		}
	}
	return idx, top
}

// Log records a message in the process logger and the desktop's log viewer.
func (m *Desktop) Log(level log.Level, msg string, keyvals ...any) {
	m.logger.Log(level, msg, keyvals...)
	if level >= m.logger.GetLevel() {
		m.Logs.Add(m.now(), level, msg, keyvals...)
	}
}

// LogDebug logs at debug level.
func (m *Desktop) LogDebug(msg string, keyvals ...any) { m.Log(log.DebugLevel, msg, keyvals...) }

// LogInfo logs at info level.
func (m *Desktop) LogInfo(msg string, keyvals ...any) { m.Log(log.InfoLevel, msg, keyvals...) }

// LogWarn logs a warning.
func (m *Desktop) LogWarn(msg string, keyvals ...any) { m.Log(log.WarnLevel, msg, keyvals...) }

// LogError logs an error.
func (m *Desktop) LogError(msg string, keyvals ...any) { m.Log(log.ErrorLevel, msg, keyvals...) }

// ShowNotification displays a temporary notification.
func (m *Desktop) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      notifType,
		StartTime: m.now(),
		Duration:  duration,
	})
	if over := len(m.Notifications) - config.MaxVisibleNotifications; over > 0 {
		m.Notifications = m.Notifications[over:]
	}
}

// pruneNotifications drops notifications whose time is up.
func (m *Desktop) pruneNotifications(now time.Time) {
	kept := m.Notifications[:0]
	for _, n := range m.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			kept = append(kept, n)
		}
	}
	m.Notifications = kept
}

// Cleanup tears the desktop down: every controller is closed, every binding
// released and the config subscription ended. Messages that arrive later
// change nothing.
func (m *Desktop) Cleanup() {
	if m.closed {
		return
	}
	for _, w := range m.Windows {
		w.Ctl.Close()
	}
	m.Bindings.ReleaseAll()
	m.release = nil
	m.Animations = nil
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.closed = true
	m.LogDebug("desktop closed", "windows", len(m.Windows))
}
