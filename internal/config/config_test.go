package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Appearance.BorderStyle == "" {
		t.Error("Expected default border style to be set")
	}
	if !cfg.Appearance.AnimationsOn() {
		t.Error("Expected animations to be on by default")
	}
	if len(cfg.Panels) == 0 {
		t.Error("Expected default panels")
	}

	policy, err := cfg.Window.Policy()
	if err != nil {
		t.Fatalf("default window policy invalid: %v", err)
	}
	if policy != window.CellPolicy() {
		t.Errorf("default policy = %+v, want CellPolicy", policy)
	}

	if v := config.ValidateConfig(cfg); v.HasErrors() || v.HasWarnings() {
		t.Errorf("default config has issues: %+v", v)
	}
}

func TestDefaultKeybindings(t *testing.T) {
	cfg := config.DefaultConfig()

	requiredActions := []string{
		"next_window",
		"prev_window",
		"minimize_window",
		"maximize_window",
		"close_window",
	}

	for _, action := range requiredActions {
		keys, ok := cfg.Keybindings.Windows[action]
		if !ok {
			t.Errorf("Expected %s keybinding to exist", action)
			continue
		}
		if len(keys) == 0 {
			t.Errorf("Expected %s to have at least one key bound", action)
		}
	}
}

// =============================================================================
// Parsing Tests
// =============================================================================

func TestParseFillsMissing(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[appearance]
theme = "dracula"

[window]
min_width = 40
settle_delay = "1s"

[keybindings.windows]
close_window = ["w"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Appearance.Theme != "dracula" {
		t.Errorf("theme = %q", cfg.Appearance.Theme)
	}
	if cfg.Appearance.BorderStyle != "rounded" {
		t.Errorf("border style not filled: %q", cfg.Appearance.BorderStyle)
	}

	policy, err := cfg.Window.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if policy.MinWidth != 40 || policy.SettleDelay != time.Second {
		t.Errorf("overrides lost: %+v", policy)
	}
	if policy.MinHeight != window.CellPolicy().MinHeight {
		t.Errorf("min height not filled: %d", policy.MinHeight)
	}

	if got := cfg.Keybindings.Windows["close_window"]; len(got) != 1 || got[0] != "w" {
		t.Errorf("close_window = %v", got)
	}
	if _, ok := cfg.Keybindings.Windows["next_window"]; !ok {
		t.Error("next_window not filled from defaults")
	}
	if len(cfg.Panels) != len(config.DefaultPanels()) {
		t.Errorf("panels not filled: %d", len(cfg.Panels))
	}
}

func TestParsePanels(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[[panels]]
title = "about"
body = "hi"

[[panels]]
title = "work"
body = "stuff"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Panels) != 2 || cfg.Panels[1].Title != "work" {
		t.Errorf("panels = %+v", cfg.Panels)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"bad toml", "[appearance\ntheme=", false},
		{"negative min width", "[window]\nmin_width = -3", true},
		{"bad duration", "[window]\nsettle_delay = \"soon\"", true},
		{"bad log level", "[logging]\nlevel = \"loud\"", true},
		{"negative connections", "[server]\nmax_connections = -1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, config.ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (%v)", got, tt.invalid, err)
			}
		})
	}
}

func TestParseWarnings(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[appearance]
border_style = "wavy"
nudge_after = "later"

[keybindings.system]
toggle_help = ["x"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := map[string]bool{"border_style": false, "nudge_after": false, "toggle_help": false}
	for _, w := range cfg.Warnings {
		if _, ok := want[w.Key]; ok {
			want[w.Key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("no warning for %s in %v", key, cfg.Warnings)
		}
	}
}

func TestNudgeDelay(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Duration
		wantOK bool
	}{
		{"1m", time.Minute, true},
		{"90s", 90 * time.Second, true},
		{"off", 0, false},
		{"", 0, false},
		{"0s", 0, false},
		{"nope", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, ok := config.AppearanceConfig{NudgeAfter: tt.in}.NudgeDelay()
			if d != tt.want || ok != tt.wantOK {
				t.Errorf("NudgeDelay(%q) = %v, %v", tt.in, d, ok)
			}
		})
	}
}

func TestWriteAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.DefaultConfig()
	cfg.Appearance.Theme = "nord"

	if err := config.WriteConfig(path, cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# deskfolio configuration file") {
		t.Error("missing header comment")
	}

	loaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Appearance.Theme != "nord" {
		t.Errorf("theme = %q", loaded.Appearance.Theme)
	}
	if len(loaded.Panels) != len(cfg.Panels) || loaded.Panels[0].Body != cfg.Panels[0].Body {
		t.Error("panels did not round-trip through the file")
	}
}

// =============================================================================
// Overrides Tests
// =============================================================================

func TestApplyOverrides(t *testing.T) {
	t.Cleanup(func() { config.UseASCIIOnly = false })

	cfg := config.DefaultConfig()
	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:    true,
		BorderStyle:  "double",
		NoAnimations: true,
		ThemeName:    "nord",
		LogLevel:     "debug",
		NoNudge:      true,
	}, cfg)

	if !cfg.Appearance.ASCIIOnly {
		t.Error("ascii mode not applied")
	}
	if config.UseASCIIOnly {
		t.Error("ApplyOverrides changed the process-wide glyph mode")
	}
	if cfg.Appearance.BorderStyle != "double" {
		t.Errorf("border style = %q", cfg.Appearance.BorderStyle)
	}
	if cfg.Appearance.AnimationsOn() || cfg.Appearance.AnimationDuration() != 0 {
		t.Error("animations still on")
	}
	if cfg.Appearance.Theme != "nord" || cfg.Logging.Level != "debug" {
		t.Errorf("theme/log level = %q/%q", cfg.Appearance.Theme, cfg.Logging.Level)
	}
	if _, ok := cfg.Appearance.NudgeDelay(); ok {
		t.Error("nudge still enabled")
	}

	config.UseASCIIOnly = cfg.Appearance.ASCIIOnly
	if config.GetButtonCloseChar() != config.ButtonCloseCharASCII {
		t.Error("glyph getters ignore ASCII mode")
	}
}

func TestApplyOverridesKeepsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.HideClock = true
	cfg.Appearance.Theme = "dracula"
	config.ApplyOverrides(config.Overrides{}, cfg)

	if !cfg.Appearance.HideClock || cfg.Appearance.Theme != "dracula" {
		t.Errorf("empty overrides changed config: %+v", cfg.Appearance)
	}
}

// =============================================================================
// KeybindRegistry Tests
// =============================================================================

func TestKeybindRegistry_GetKeys(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	if keys := registry.GetKeys("close_window"); len(keys) == 0 {
		t.Error("Expected close_window to have keys")
	}
	if keys := registry.GetKeys("nonexistent_action"); len(keys) != 0 {
		t.Errorf("Expected empty keys for nonexistent action, got %v", keys)
	}
}

func TestKeybindRegistry_GetAction(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	tests := []struct {
		key    string
		action string
	}{
		{"tab", "next_window"},
		{"shift+tab", "prev_window"},
		{"m", "minimize_window"},
		{"f", "maximize_window"},
		{"x", "close_window"},
		{"esc", "dismiss_dialog"},
		{"escape", "dismiss_dialog"},
		{"ctrl+l", "toggle_logs"},
		{"Ctrl+L", "toggle_logs"},
		{"ctrl+c", "quit"},
		{"?", "toggle_help"},
		{"ctrl+shift+alt+super+hyper+x", ""},
		{"M", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := registry.GetAction(tt.key); got != tt.action {
				t.Errorf("GetAction(%q) = %q, want %q", tt.key, got, tt.action)
			}
		})
	}
}

func TestKeybindRegistry_GetKeysForDisplay(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	tests := map[string]string{
		"toggle_logs": "Ctrl+L",
		"prev_window": "Shift+Tab",
		"scroll_up":   "↑, k",
		"quit":        "q, Ctrl+C",
		"unknown":     "",
	}
	for action, want := range tests {
		if got := registry.GetKeysForDisplay(action); got != want {
			t.Errorf("GetKeysForDisplay(%q) = %q, want %q", action, got, want)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ctrl+a", "ctrl+a"},
		{"Ctrl+A", "ctrl+a"},
		{"CTRL+A", "ctrl+a"},
		{"shift+ctrl+a", "ctrl+shift+a"},
		{"opt+x", "alt+x"},
		{"return", "enter"},
		{"Escape", "esc"},
		{"M", "M"},
		{"+", "+"},
		{"ctrl++", "ctrl++"},
		{"  q ", "q"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := config.NormalizeKey(tc.input); got != tc.expected {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestGetKeybindingsSections(t *testing.T) {
	sections := config.GetKeybindings(nil)
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
		if len(s.Bindings) == 0 {
			t.Errorf("section %q is empty", s.Title)
		}
	}
	if got := strings.Join(titles, ","); got != "WINDOWS,DIALOG,SYSTEM,MOUSE" {
		t.Errorf("sections = %s", got)
	}
}

func TestActionDescriptions(t *testing.T) {
	cfg := config.DefaultConfig()
	for _, section := range []map[string][]string{cfg.Keybindings.Windows, cfg.Keybindings.Dialog, cfg.Keybindings.System} {
		for action := range section {
			if desc := config.ActionDescriptions[action]; desc == "" {
				t.Errorf("Expected description for action %q", action)
			}
		}
	}
}

// =============================================================================
// Watcher Tests
// =============================================================================

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	w, err := config.Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	reloads, unsubscribe := w.Subscribe()
	defer unsubscribe()

	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"nord\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Config.Appearance.Theme != "nord" {
			t.Errorf("theme = %q", r.Config.Appearance.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(""), 0600); err != nil {
		t.Fatal(err)
	}
	w, err := config.Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()
	reloads, _ := w.Subscribe()

	if err := os.WriteFile(path, []byte("[window]\nmin_height = -1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	select {
	case r := <-reloads:
		if !errors.Is(r.Err, config.ErrInvalidConfig) {
			t.Errorf("reload error = %v, want ErrInvalidConfig", r.Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherCloseClosesSubscribers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := config.Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	reloads, unsubscribe := w.Subscribe()

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_ = w.Close()
	unsubscribe()

	if _, ok := <-reloads; ok {
		t.Error("subscriber channel still open")
	}
	late, _ := w.Subscribe()
	if _, ok := <-late; ok {
		t.Error("subscription after close is open")
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkKeybindRegistry_GetAction(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetAction("m")
	}
}

func BenchmarkNormalizeKey(b *testing.B) {
	keys := []string{"ctrl+a", "Ctrl+Shift+B", "alt+1", "return"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = config.NormalizeKey(keys[i%len(keys)])
	}
}
