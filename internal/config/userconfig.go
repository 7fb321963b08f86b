package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// ErrInvalidConfig is wrapped by every error that comes from a config file
// that parsed but failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

const configFile = "deskfolio/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Window      WindowConfig      `toml:"window"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	Panels      []Panel           `toml:"panels"`

	// Warnings holds the non-fatal validation issues found while loading.
	Warnings []ValidationIssue `toml:"-"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme             string `toml:"theme"`               // bubbletint theme ID (e.g. dracula, nord); empty uses built-in colors
	BorderStyle       string `toml:"border_style"`        // rounded, normal, thick, double, block, ascii
	ASCIIOnly         bool   `toml:"ascii_only"`          // Use ASCII glyphs instead of Unicode/Nerd Font icons
	HideClock         bool   `toml:"hide_clock"`          // Hide the clock in the status bar
	AnimationsEnabled *bool  `toml:"animations_enabled"`  // Animate collapse, expand and snap-back (default: true)
	MaximizedMaxWidth int    `toml:"maximized_max_width"` // Width cap of a maximized window in columns
	NudgeAfter        string `toml:"nudge_after"`         // Duration before the engagement nudge; "off" disables it
}

// WindowConfig overrides the interaction limits of new windows. Distances
// are in terminal cells.
type WindowConfig struct {
	MinWidth        int     `toml:"min_width"`
	MinHeight       int     `toml:"min_height"`
	MaxDistance     float64 `toml:"max_distance"`
	ReturnStep      float64 `toml:"return_step"`
	ReturnStepDelay string  `toml:"return_step_delay"`
	MaxReturnDelay  string  `toml:"max_return_delay"`
	SettleDelay     string  `toml:"settle_delay"`
	CoarseBelow     int     `toml:"coarse_below"`
}

// ServerConfig holds the SSH and web listener settings.
type ServerConfig struct {
	SSHHost        string `toml:"ssh_host"`
	SSHPort        string `toml:"ssh_port"`
	HostKeyPath    string `toml:"host_key_path"` // Empty uses $XDG_DATA_HOME/deskfolio/host_key
	WebHost        string `toml:"web_host"`
	WebPort        string `toml:"web_port"`
	MaxConnections int    `toml:"max_connections"` // 0 means unlimited
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // Empty uses $XDG_STATE_HOME/deskfolio/deskfolio.log in local mode
}

// Panel is the content of one window.
type Panel struct {
	Title string `toml:"title"`
	Body  string `toml:"body"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	animations := true
	policy := window.CellPolicy()
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:       "rounded",
			AnimationsEnabled: &animations,
			MaximizedMaxWidth: DefaultMaximizedMaxWidth,
			NudgeAfter:        DefaultNudgeAfter.String(),
		},
		Window: WindowConfig{
			MinWidth:        policy.MinWidth,
			MinHeight:       policy.MinHeight,
			MaxDistance:     policy.MaxDistance,
			ReturnStep:      policy.ReturnStep,
			ReturnStepDelay: policy.ReturnStepDelay.String(),
			MaxReturnDelay:  policy.MaxReturnDelay.String(),
			SettleDelay:     policy.SettleDelay.String(),
			CoarseBelow:     policy.CoarseBelow,
		},
		Keybindings: KeybindingsConfig{
			Windows: map[string][]string{
				"next_window":     {"tab"},
				"prev_window":     {"shift+tab"},
				"minimize_window": {"m"},
				"maximize_window": {"f", "z"},
				"close_window":    {"x"},
			},
			Dialog: map[string][]string{
				"dismiss_dialog": {"esc", "enter", "y"},
			},
			System: map[string][]string{
				"scroll_up":   {"up", "k"},
				"scroll_down": {"down", "j"},
				"toggle_help": {"?"},
				"toggle_logs": {"ctrl+l"},
				"quit":        {"q", "ctrl+c"},
			},
		},
		Server: ServerConfig{
			SSHHost: "localhost",
			SSHPort: "2222",
			WebHost: "localhost",
			WebPort: "7681",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Panels: DefaultPanels(),
	}
}

// DefaultPanels returns the windows shown when the config file has none.
func DefaultPanels() []Panel {
	return []Panel{
		{
			Title: "README.md",
			Body: "# hello, visitor\n\n" +
				"I build backend systems and the occasional terminal toy.\n" +
				"Grab a title bar to move a window, or a border to resize it.\n" +
				"Drag too far and it will find its way home.",
		},
		{
			Title: "stack.toml",
			Body: "languages = [\"Go\", \"TypeScript\", \"Python\"]\n" +
				"backend   = [\"PostgreSQL\", \"Redis\", \"gRPC\"]\n" +
				"infra     = [\"Docker\", \"Kubernetes\", \"Terraform\"]\n" +
				"terminal  = [\"Bubble Tea\", \"Lip Gloss\", \"Wish\"]",
		},
		{
			Title: "~/projects",
			Body: "deskfolio    this desktop, served over ssh and the web\n" +
				"agrisense    crop health monitoring from satellite imagery\n" +
				"vidtube      video platform with JWT auth and media storage\n" +
				"nyay-sarthi  legal assistance chatbot",
		},
		{
			Title: "connect.sh",
			Body: "#!/bin/sh\n" +
				"echo \"mail:   hello@example.com\"\n" +
				"echo \"github: github.com/example\"\n" +
				"echo \"ssh:    ssh -p 2222 deskfolio.example.com\"",
		},
	}
}

// AnimationsOn reports whether animations are enabled; unset means true.
func (a AppearanceConfig) AnimationsOn() bool {
	return a.AnimationsEnabled == nil || *a.AnimationsEnabled
}

// AnimationDuration returns the collapse/expand duration, zero when
// animations are disabled.
func (a AppearanceConfig) AnimationDuration() time.Duration {
	if !a.AnimationsOn() {
		return 0
	}
	return DefaultAnimationDuration
}

// NudgeDelay parses NudgeAfter. The second result is false when the nudge
// is disabled.
func (a AppearanceConfig) NudgeDelay() (time.Duration, bool) {
	switch strings.ToLower(strings.TrimSpace(a.NudgeAfter)) {
	case "", "off", "0", "0s":
		return 0, false
	}
	d, err := time.ParseDuration(a.NudgeAfter)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// Policy converts the [window] section into a window.Policy.
func (w WindowConfig) Policy() (window.Policy, error) {
	p := window.Policy{
		MinWidth:    w.MinWidth,
		MinHeight:   w.MinHeight,
		MaxDistance: w.MaxDistance,
		ReturnStep:  w.ReturnStep,
		CoarseBelow: w.CoarseBelow,
	}
	var err error
	if p.ReturnStepDelay, err = time.ParseDuration(w.ReturnStepDelay); err != nil {
		return p, fmt.Errorf("return_step_delay: %w", err)
	}
	if p.MaxReturnDelay, err = time.ParseDuration(w.MaxReturnDelay); err != nil {
		return p, fmt.Errorf("max_return_delay: %w", err)
	}
	if p.SettleDelay, err = time.ParseDuration(w.SettleDelay); err != nil {
		return p, fmt.Errorf("settle_delay: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadFile(configPath)
}

// LoadFile reads, fills and validates the config at path.
func LoadFile(path string) (*UserConfig, error) {
	// #nosec G304 - reading the user's own config is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML, fills missing values with defaults and validates the
// result. Validation warnings are returned alongside a usable config.
func Parse(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingWindow(&cfg, defaultCfg)
	fillMissingServer(&cfg, defaultCfg)
	fillMissingLogging(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)
	if len(cfg.Panels) == 0 {
		cfg.Panels = defaultCfg.Panels
	}

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		return nil, validation.Err()
	}
	cfg.Warnings = validation.Warnings
	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResetConfig overwrites the config file with the defaults.
func ResetConfig() (string, error) {
	configPath, err := xdg.ConfigFile(configFile)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return configPath, WriteConfig(configPath, DefaultConfig())
}

// WriteConfig writes cfg to path with a commented header.
func WriteConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# deskfolio configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# For keybindings, run: deskfolio keybinds list\n")
	sb.WriteString("# Changes are picked up while deskfolio is running.\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# theme: bubbletint theme ID (dracula, nord, ...). Empty uses built-in colors.\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, block, ascii\n")
	sb.WriteString("# maximized_max_width: width cap of a maximized window, in columns\n")
	sb.WriteString("# nudge_after: how long before the \"say hello\" nudge appears; \"off\" disables it\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# WINDOW\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# Distances are in terminal cells. A window dragged further than max_distance\n")
	sb.WriteString("# from its place snaps back after min(distance / return_step * return_step_delay,\n")
	sb.WriteString("# max_return_delay), then settles for settle_delay. Below coarse_below columns\n")
	sb.WriteString("# windows cannot be dragged or resized. Changes apply to new sessions.\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.AnimationsEnabled == nil {
		cfg.Appearance.AnimationsEnabled = defaultCfg.Appearance.AnimationsEnabled
	}
	if cfg.Appearance.MaximizedMaxWidth <= 0 {
		cfg.Appearance.MaximizedMaxWidth = defaultCfg.Appearance.MaximizedMaxWidth
	}
	if cfg.Appearance.NudgeAfter == "" {
		cfg.Appearance.NudgeAfter = defaultCfg.Appearance.NudgeAfter
	}
}

func fillMissingWindow(cfg, defaultCfg *UserConfig) {
	w, d := &cfg.Window, defaultCfg.Window
	if w.MinWidth == 0 {
		w.MinWidth = d.MinWidth
	}
	if w.MinHeight == 0 {
		w.MinHeight = d.MinHeight
	}
	if w.MaxDistance == 0 {
		w.MaxDistance = d.MaxDistance
	}
	if w.ReturnStep == 0 {
		w.ReturnStep = d.ReturnStep
	}
	if w.ReturnStepDelay == "" {
		w.ReturnStepDelay = d.ReturnStepDelay
	}
	if w.MaxReturnDelay == "" {
		w.MaxReturnDelay = d.MaxReturnDelay
	}
	if w.SettleDelay == "" {
		w.SettleDelay = d.SettleDelay
	}
	if w.CoarseBelow == 0 {
		w.CoarseBelow = d.CoarseBelow
	}
}

func fillMissingServer(cfg, defaultCfg *UserConfig) {
	s, d := &cfg.Server, defaultCfg.Server
	if s.SSHHost == "" {
		s.SSHHost = d.SSHHost
	}
	if s.SSHPort == "" {
		s.SSHPort = d.SSHPort
	}
	if s.WebHost == "" {
		s.WebHost = d.WebHost
	}
	if s.WebPort == "" {
		s.WebPort = d.WebPort
	}
}

func fillMissingLogging(cfg, defaultCfg *UserConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Windows == nil {
		cfg.Keybindings.Windows = make(map[string][]string)
	}
	if cfg.Keybindings.Dialog == nil {
		cfg.Keybindings.Dialog = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings.Windows, defaultCfg.Keybindings.Windows)
	fillMapDefaults(cfg.Keybindings.Dialog, defaultCfg.Keybindings.Dialog)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return xdg.ConfigFile(configFile)
	}
	return path, nil
}
