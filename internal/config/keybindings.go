package config

import (
	"maps"
	"slices"
	"strings"
)

// KeybindingsConfig holds all keybinding configurations, grouped the way the
// help overlay shows them.
type KeybindingsConfig struct {
	Windows map[string][]string `toml:"windows"`
	Dialog  map[string][]string `toml:"dialog"`
	System  map[string][]string `toml:"system"`
}

func (k KeybindingsConfig) sections() []map[string][]string {
	return []map[string][]string{k.Windows, k.Dialog, k.System}
}

func sortedActions(section map[string][]string) []string {
	return slices.Sorted(maps.Keys(section))
}

// ActionDescriptions maps every bindable action to its help text.
var ActionDescriptions = map[string]string{
	"next_window":     "Focus next window",
	"prev_window":     "Focus previous window",
	"minimize_window": "Minimize / restore window",
	"maximize_window": "Maximize / restore window",
	"close_window":    "Close window",
	"dismiss_dialog":  "Dismiss dialog",
	"scroll_up":       "Scroll page up",
	"scroll_down":     "Scroll page down",
	"toggle_help":     "Toggle help",
	"toggle_logs":     "Toggle log viewer",
	"quit":            "Quit",
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil, it falls back to the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := []KeybindingSection{}

	windows := KeybindingSection{Title: "WINDOWS"}
	addBinding(&windows, registry, "next_window")
	addBinding(&windows, registry, "prev_window")
	addBinding(&windows, registry, "minimize_window")
	addBinding(&windows, registry, "maximize_window")
	addBinding(&windows, registry, "close_window")
	if len(windows.Bindings) > 0 {
		sections = append(sections, windows)
	}

	dialog := KeybindingSection{Title: "DIALOG"}
	addBinding(&dialog, registry, "dismiss_dialog")
	if len(dialog.Bindings) > 0 {
		sections = append(sections, dialog)
	}

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, "scroll_up")
	addBinding(&system, registry, "scroll_down")
	addBinding(&system, registry, "toggle_help")
	addBinding(&system, registry, "toggle_logs")
	addBinding(&system, registry, "quit")
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}

	return append(sections, getMouseHelpSection())
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: ActionDescriptions[action],
		})
	}
}

// getMouseHelpSection describes the mouse gestures, which are not rebindable.
func getMouseHelpSection() KeybindingSection {
	return KeybindingSection{
		Title: "MOUSE",
		Bindings: []Keybinding{
			{"Drag title bar", "Move window"},
			{"Drag border", "Resize window"},
			{"Click " + GetButtonMinimizeChar(), "Minimize / restore"},
			{"Click " + GetButtonMaximizeChar(), "Maximize / restore"},
			{"Click " + GetButtonCloseChar(), "Close"},
			{"Click backdrop", "Restore maximized window"},
			{"Wheel", "Scroll page"},
		},
	}
}

// NormalizeKey canonicalizes a key string so config values and
// tea.KeyPressMsg.String() compare equal. Modifier names are lower-cased and
// ordered; the base key keeps its case so "M" and "m" stay distinct.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if key == "+" {
		return key
	}

	parts := strings.Split(key, "+")
	base := parts[len(parts)-1]
	if base == "" && len(parts) >= 2 {
		// "ctrl++"
		base = "+"
		parts = parts[:len(parts)-1]
	}

	mods := make([]string, 0, len(parts)-1)
	for _, m := range parts[:len(parts)-1] {
		m = strings.ToLower(m)
		switch m {
		case "control":
			m = "ctrl"
		case "opt", "option":
			m = "alt"
		case "cmd", "command":
			m = "super"
		}
		if m != "" && !slices.Contains(mods, m) {
			mods = append(mods, m)
		}
	}
	slices.SortFunc(mods, func(a, b string) int { return modifierRank(a) - modifierRank(b) })

	if slices.Contains(mods, "ctrl") || slices.Contains(mods, "alt") {
		base = strings.ToLower(base)
	}
	if len([]rune(base)) > 1 {
		base = strings.ToLower(base)
		switch base {
		case "escape":
			base = "esc"
		case "return":
			base = "enter"
		case "spacebar":
			base = "space"
		}
	}

	if len(mods) == 0 {
		return base
	}
	return strings.Join(mods, "+") + "+" + base
}

// modifierRank follows the order Bubble Tea prints modifiers in.
func modifierRank(m string) int {
	switch m {
	case "ctrl":
		return 0
	case "alt":
		return 1
	case "shift":
		return 2
	case "meta":
		return 3
	case "hyper":
		return 4
	case "super":
		return 5
	default:
		return 6
	}
}
