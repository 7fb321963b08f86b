// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Layout
// =============================================================================

const (
	// StatusBarHeight is the number of rows reserved at the bottom of the screen.
	StatusBarHeight = 1

	// PageMarginX is the horizontal gap between the screen edge and the flow.
	PageMarginX = 2

	// PageMarginY is the gap above the first row of windows.
	PageMarginY = 1

	// FlowGap is the gap between windows in the flow, in both directions.
	FlowGap = 1

	// TwoColumnMinWidth is the narrowest terminal that gets a two-column flow.
	TwoColumnMinWidth = 120

	// WindowChromeRows is the number of rows used by the top border, the
	// title bar and the bottom border.
	WindowChromeRows = 3

	// TitleBarRow is the row of the title bar inside a window.
	TitleBarRow = 1

	// WindowChromeCols is the number of columns used by the side borders.
	WindowChromeCols = 2

	// MaximizedWidthRatio caps the width of a maximized window.
	MaximizedWidthRatio = 0.9

	// MaximizedHeightRatio caps the height of a maximized window.
	MaximizedHeightRatio = 0.85

	// DefaultMaximizedMaxWidth is the default width cap of a maximized window.
	DefaultMaximizedMaxWidth = 100

	// DialogWidth is the width of the retention dialog.
	DialogWidth = 44

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// MaxLogEntries is the number of log lines kept for the log viewer.
	MaxLogEntries = 200

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 60

	// MaxVisibleNotifications is the maximum number of notifications shown at once
	MaxVisibleNotifications = 3

	// WheelScrollRows is how far one wheel notch scrolls the page.
	WheelScrollRows = 3
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexBackdrop sits above every window in the flow.
	ZIndexBackdrop = 1000
	// ZIndexMaximized is the maximized window, above its backdrop.
	ZIndexMaximized = 1001
	// ZIndexDialog is the retention dialog.
	ZIndexDialog = 1100
	// ZIndexStatusBar is the bottom status row.
	ZIndexStatusBar = 1200
	// ZIndexNotifications is the notification stack.
	ZIndexNotifications = 1300
	// ZIndexLogs is the log viewer overlay.
	ZIndexLogs = 1400
	// ZIndexHelp is the help overlay.
	ZIndexHelp = 1500
)

// =============================================================================
// Animation Durations and Intervals
// =============================================================================

const (
	// DefaultAnimationDuration is the collapse and expand duration of a window body.
	DefaultAnimationDuration = 200 * time.Millisecond

	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 3 * time.Second

	// SysinfoInterval is the interval between host stat samples.
	SysinfoInterval = 2 * time.Second

	// SysinfoTimeout bounds a single host stat sample.
	SysinfoTimeout = time.Second

	// ClockInterval is how often the status bar clock refreshes.
	ClockInterval = time.Second

	// DefaultNudgeAfter is how long a visitor browses before the engagement nudge.
	DefaultNudgeAfter = 60 * time.Second
)

// =============================================================================
// FPS
// =============================================================================

const (
	// NormalFPS caps the renderer.
	NormalFPS = 60

	// AnimationFPS is the tick rate while an animation is running.
	AnimationFPS = 30
)

// =============================================================================
// Window Controls - Nerd Font / Unicode (Default)
// =============================================================================

const (
	// ButtonMinimizeChar is the glyph of the minimize control.
	ButtonMinimizeChar = "●"
	// ButtonMaximizeChar is the glyph of the maximize control.
	ButtonMaximizeChar = "●"
	// ButtonRestoreChar replaces the maximize glyph while maximized.
	ButtonRestoreChar = "◉"
	// ButtonCloseChar is the glyph of the close control.
	ButtonCloseChar = "●"
	// GripChar marks a resize grip on a window that can be resized.
	GripChar = "·"
	// BackdropChar fills the backdrop behind a maximized window.
	BackdropChar = "░"
	// StatusIconCPU prefixes the CPU reading (Nerd Font: nf-oct-cpu).
	StatusIconCPU = string(rune(0xf4bc))
	// StatusIconMem prefixes the memory reading (Nerd Font: nf-fa-memory).
	StatusIconMem = string(rune(0xefc5))
	// StatusIconNet prefixes the network totals (Nerd Font: nf-md-lan).
	StatusIconNet = string(rune(0xf0318))
	// StatusIconClock prefixes the clock (Nerd Font: nf-fa-clock_o).
	StatusIconClock = string(rune(0xf017))
)

// =============================================================================
// Window Controls - ASCII Fallback
// =============================================================================

const (
	ButtonMinimizeCharASCII = "-"
	ButtonMaximizeCharASCII = "+"
	ButtonRestoreCharASCII  = "="
	ButtonCloseCharASCII    = "x"
	GripCharASCII           = "."
	BackdropCharASCII       = ":"
	StatusIconCPUASCII      = "cpu"
	StatusIconMemASCII      = "mem"
	StatusIconNetASCII      = "net"
	StatusIconClockASCII    = ""
)

// UseASCIIOnly switches every glyph to its ASCII fallback. It is set once at
// start-up from the --ascii-only flag or the config file.
var UseASCIIOnly = false

func glyph(unicode, ascii string) string {
	if UseASCIIOnly {
		return ascii
	}
	return unicode
}

func GetButtonMinimizeChar() string { return glyph(ButtonMinimizeChar, ButtonMinimizeCharASCII) }
func GetButtonMaximizeChar() string { return glyph(ButtonMaximizeChar, ButtonMaximizeCharASCII) }
func GetButtonRestoreChar() string  { return glyph(ButtonRestoreChar, ButtonRestoreCharASCII) }
func GetButtonCloseChar() string    { return glyph(ButtonCloseChar, ButtonCloseCharASCII) }
func GetGripChar() string           { return glyph(GripChar, GripCharASCII) }
func GetBackdropChar() string       { return glyph(BackdropChar, BackdropCharASCII) }
func GetStatusIconCPU() string      { return glyph(StatusIconCPU, StatusIconCPUASCII) }
func GetStatusIconMem() string      { return glyph(StatusIconMem, StatusIconMemASCII) }
func GetStatusIconNet() string      { return glyph(StatusIconNet, StatusIconNetASCII) }
func GetStatusIconClock() string    { return glyph(StatusIconClock, StatusIconClockASCII) }

// BorderForStyle returns the lipgloss Border for a border_style value.
func BorderForStyle(style string) lipgloss.Border {
	if UseASCIIOnly || style == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// BorderStyles lists the accepted border_style values.
var BorderStyles = []string{"rounded", "normal", "thick", "double", "block", "ascii"}
