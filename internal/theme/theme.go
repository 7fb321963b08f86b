// Package theme provides the color palette for window chrome, overlays and
// the status bar.
package theme

import (
	"fmt"
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	mu       sync.RWMutex
	enabled  bool
	registry sync.Once
)

// Initialize selects the theme with the given bubbletint ID.
// If themeName is empty, theming is disabled and the fallback colors are used.
// Unknown names fall back to the registry default and report an error.
// It may be called again when the config file is reloaded.
func Initialize(themeName string) error {
	mu.Lock()
	defer mu.Unlock()

	if themeName == "" {
		enabled = false
		return nil
	}

	registry.Do(func() { tint.NewDefaultRegistry() })
	enabled = true

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Names lists the IDs of every registered theme.
func Names() []string {
	registry.Do(func() { tint.NewDefaultRegistry() })
	return tint.TintIDs()
}

func pick(fallback string, choose func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return choose(t)
}

// Window chrome

func BorderUnfocused() color.Color {
	return pick("#6c7086", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// BorderGesture colors the border of a window being dragged or resized.
func BorderGesture() color.Color {
	return pick("#FFD787", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

func Grip() color.Color {
	return pick("#585b70", func(t *tint.Tint) color.Color { return t.Purple })
}

func TitleFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

func WindowBg() color.Color {
	return pick("#1e1e2e", func(t *tint.Tint) color.Color { return t.Bg })
}

func BodyFg() color.Color {
	return pick("#cdd6f4", func(t *tint.Tint) color.Color { return t.White })
}

// Control button colors, left to right.

func ButtonMinimize() color.Color {
	return pick("#f9e2af", func(t *tint.Tint) color.Color { return t.Yellow })
}

func ButtonMaximize() color.Color {
	return pick("#a6e3a1", func(t *tint.Tint) color.Color { return t.Green })
}

func ButtonClose() color.Color {
	return pick("#f38ba8", func(t *tint.Tint) color.Color { return t.Red })
}

// Backdrop behind a maximized window.
func BackdropFg() color.Color {
	return lipgloss.Color("#313244")
}

func BackdropBg() color.Color {
	return lipgloss.Color("#11111b")
}

// Retention dialog

func DialogBorder() color.Color {
	return pick("#89dceb", func(t *tint.Tint) color.Color { return t.Cyan })
}

func DialogPrimaryBg() color.Color {
	return pick("#89dceb", func(t *tint.Tint) color.Color { return t.Cyan })
}

func DialogPrimaryFg() color.Color {
	return pick("#11111b", func(t *tint.Tint) color.Color { return t.Bg })
}

func DialogSecondaryFg() color.Color {
	return pick("#a6adc8", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// Status bar

func StatusBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func StatusFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

func StatusAccent() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func StatusDimmed() color.Color {
	return lipgloss.Color("#808090")
}

// Notification colors
func NotificationError() color.Color {
	return pick("#cd0000", func(t *tint.Tint) color.Color { return t.Red })
}

func NotificationWarning() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) color.Color { return t.Yellow })
}

func NotificationSuccess() color.Color {
	return pick("#00cd00", func(t *tint.Tint) color.Color { return t.Green })
}

func NotificationInfo() color.Color {
	return pick("#0000ee", func(t *tint.Tint) color.Color { return t.Blue })
}

func NotificationBg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Bg })
}

func NotificationFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

// Log viewer colors
func LogViewerTitle() color.Color {
	return lipgloss.Color("#00d7ff")
}

func LogViewerError() color.Color {
	return lipgloss.Color("#ff5f5f")
}

func LogViewerWarn() color.Color {
	return lipgloss.Color("#ffd75f")
}

func LogViewerInfo() color.Color {
	return lipgloss.Color("#87d787")
}

func LogViewerDebug() color.Color {
	return lipgloss.Color("#8a8a8a")
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpTitle() color.Color {
	return lipgloss.Color("12")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
