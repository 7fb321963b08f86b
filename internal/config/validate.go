package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidationIssue is one problem found in a config file.
type ValidationIssue struct {
	Field   string // Section name, e.g. "window"
	Key     string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Field, v.Key, v.Message)
}

// ValidationResult collects errors (fatal) and warnings.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any fatal issue was found.
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any non-fatal issue was found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// Err folds every error into one wrapping ErrInvalidConfig, or returns nil.
func (r *ValidationResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.String()
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

var logLevels = []string{"debug", "info", "warn", "error"}

// ValidateConfig checks a filled config.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	r := &ValidationResult{}

	if !slices.Contains(BorderStyles, cfg.Appearance.BorderStyle) {
		r.warnf("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
	}
	if n := cfg.Appearance.NudgeAfter; n != "" && n != "off" {
		if _, err := time.ParseDuration(n); err != nil {
			r.warnf("appearance", "nudge_after", "not a duration (%v), nudge disabled", err)
		}
	}

	if _, err := cfg.Window.Policy(); err != nil {
		r.errorf("window", "policy", "%v", err)
	}

	if !slices.Contains(logLevels, strings.ToLower(cfg.Logging.Level)) {
		r.errorf("logging", "level", "must be one of %s, got %q", strings.Join(logLevels, ", "), cfg.Logging.Level)
	}
	if cfg.Server.MaxConnections < 0 {
		r.errorf("server", "max_connections", "must not be negative, got %d", cfg.Server.MaxConnections)
	}

	for i, p := range cfg.Panels {
		if strings.TrimSpace(p.Title) == "" {
			r.warnf("panels", fmt.Sprintf("%d", i), "panel has no title")
		}
	}

	checkKeybinds(r, cfg)
	return r
}

// checkKeybinds warns about a key bound to two different actions.
func checkKeybinds(r *ValidationResult, cfg *UserConfig) {
	seen := map[string]string{}
	for _, section := range cfg.Keybindings.sections() {
		for _, action := range sortedActions(section) {
			if _, ok := ActionDescriptions[action]; !ok {
				r.warnf("keybindings", action, "unknown action")
			}
			for _, key := range section[action] {
				norm := NormalizeKey(key)
				if norm == "" {
					r.warnf("keybindings", action, "empty key")
					continue
				}
				if other, dup := seen[norm]; dup && other != action {
					r.warnf("keybindings", action, "key %q is also bound to %s", key, other)
					continue
				}
				seen[norm] = action
			}
		}
	}
}
