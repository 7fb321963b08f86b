package config

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Unicode and Nerd Font glyphs
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// HideClock overrides hiding the clock
	HideClock bool

	// NoAnimations disables UI animations
	NoAnimations bool

	// ThemeName is the theme to load
	ThemeName string

	// LogLevel overrides [logging] level
	LogLevel string

	// NoNudge disables the engagement nudge
	NoNudge bool
}

// ApplyOverrides applies CLI flag overrides on top of cfg, which must not be
// nil. It is applied again to every reloaded config, so it never touches
// process-wide state; callers set UseASCIIOnly once at start-up.
func ApplyOverrides(overrides Overrides, cfg *UserConfig) {
	if overrides.ASCIIOnly {
		cfg.Appearance.ASCIIOnly = true
	}

	if overrides.BorderStyle != "" {
		cfg.Appearance.BorderStyle = overrides.BorderStyle
	}

	// Hide Clock - OR of CLI flag and user config
	cfg.Appearance.HideClock = overrides.HideClock || cfg.Appearance.HideClock

	if overrides.NoAnimations {
		off := false
		cfg.Appearance.AnimationsEnabled = &off
	}

	if overrides.ThemeName != "" {
		cfg.Appearance.Theme = overrides.ThemeName
	}

	if overrides.LogLevel != "" {
		cfg.Logging.Level = overrides.LogLevel
	}

	if overrides.NoNudge {
		cfg.Appearance.NudgeAfter = "off"
	}
}
