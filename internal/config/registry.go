package config

import "strings"

// KeybindRegistry resolves keys to actions and back for one config.
type KeybindRegistry struct {
	actionKeys map[string][]string
	keyAction  map[string]string
}

// NewKeybindRegistry indexes every binding in cfg. When a key is bound twice
// the first action in section order wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionKeys: make(map[string][]string),
		keyAction:  make(map[string]string),
	}
	if cfg == nil {
		return r
	}
	for _, section := range cfg.Keybindings.sections() {
		for _, action := range sortedActions(section) {
			for _, key := range section[action] {
				norm := NormalizeKey(key)
				if norm == "" {
					continue
				}
				r.actionKeys[action] = append(r.actionKeys[action], key)
				if _, taken := r.keyAction[norm]; !taken {
					r.keyAction[norm] = action
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action, as written in the config.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionKeys[action]
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	return r.keyAction[NormalizeKey(key)]
}

// GetKeysForDisplay formats the keys of action for the help overlay.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = prettyKey(k)
	}
	return strings.Join(display, ", ")
}

func prettyKey(key string) string {
	parts := strings.Split(NormalizeKey(key), "+")
	for i, p := range parts {
		switch p {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		case "super":
			parts[i] = "Super"
		case "esc":
			parts[i] = "Esc"
		case "enter":
			parts[i] = "Enter"
		case "tab":
			parts[i] = "Tab"
		case "space":
			parts[i] = "Space"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		default:
			if i < len(parts)-1 || len([]rune(p)) > 1 {
				continue
			}
			if i > 0 {
				parts[i] = strings.ToUpper(p)
			}
		}
	}
	return strings.Join(parts, "+")
}
