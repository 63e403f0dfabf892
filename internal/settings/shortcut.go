package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidShortcut wraps every shortcut parse failure.
var ErrInvalidShortcut = errors.New("invalid shortcut")

// Modifier is a normalised shortcut modifier.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModAlt   Modifier = "alt"
	ModShift Modifier = "shift"
	ModSuper Modifier = "super"
)

var modifierOrder = []Modifier{ModCtrl, ModAlt, ModShift, ModSuper}

var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"meta":    ModAlt,
	"m":       ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
}

var namedKeys = map[string]string{
	"space":     "Space",
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"escape":    "Escape",
	"esc":       "Escape",
	"backspace": "BSpace",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pagedown":  "PageDown",
	"insert":    "IC",
	"delete":    "DC",
}

// Shortcut is a parsed global key combination such as "alt+space".
type Shortcut struct {
	Modifiers []Modifier
	Key       string
}

// ParseShortcut parses value, accepting "+" or "-" separated parts.
func ParseShortcut(value string) (Shortcut, error) {
	raw := strings.TrimSpace(strings.ToLower(value))
	if raw == "" {
		return Shortcut{}, fmt.Errorf("%w: empty value", ErrInvalidShortcut)
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '+' })
	if len(parts) == 1 && strings.Contains(raw, "-") && len(raw) > 1 {
		parts = strings.Split(raw, "-")
	}
	if len(parts) == 0 {
		return Shortcut{}, fmt.Errorf("%w: %q has no key", ErrInvalidShortcut, value)
	}
	seen := map[Modifier]bool{}
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierAliases[strings.TrimSpace(part)]
		if !ok {
			return Shortcut{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidShortcut, part)
		}
		if seen[mod] {
			return Shortcut{}, fmt.Errorf("%w: modifier %q repeated", ErrInvalidShortcut, part)
		}
		seen[mod] = true
	}
	key, err := normaliseKey(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return Shortcut{}, err
	}
	sc := Shortcut{Key: key}
	for _, mod := range modifierOrder {
		if seen[mod] {
			sc.Modifiers = append(sc.Modifiers, mod)
		}
	}
	return sc, nil
}

func normaliseKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: missing key", ErrInvalidShortcut)
	}
	if _, isMod := modifierAliases[key]; isMod && len(key) > 1 {
		return "", fmt.Errorf("%w: %q is a modifier, not a key", ErrInvalidShortcut, key)
	}
	if _, ok := namedKeys[key]; ok {
		return key, nil
	}
	if len(key) >= 2 && key[0] == 'f' {
		var n int
		if _, err := fmt.Sscanf(key[1:], "%d", &n); err == nil && fmt.Sprintf("f%d", n) == key && n >= 1 && n <= 24 {
			return key, nil
		}
	}
	runes := []rune(key)
	if len(runes) == 1 && runes[0] > ' ' && runes[0] < 0x7f {
		return key, nil
	}
	return "", fmt.Errorf("%w: unknown key %q", ErrInvalidShortcut, key)
}

// Has reports whether mod is part of the shortcut.
func (s Shortcut) Has(mod Modifier) bool {
	for _, m := range s.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// String renders the canonical form, e.g. "ctrl+alt+k".
func (s Shortcut) String() string {
	parts := make([]string, 0, len(s.Modifiers)+1)
	for _, mod := range s.Modifiers {
		parts = append(parts, string(mod))
	}
	parts = append(parts, s.Key)
	return strings.Join(parts, "+")
}

// TmuxKey renders the shortcut in tmux key notation, e.g. "M-Space".
func (s Shortcut) TmuxKey() (string, error) {
	if s.Has(ModSuper) {
		return "", fmt.Errorf("%w: tmux cannot bind the super modifier", ErrInvalidShortcut)
	}
	var b strings.Builder
	if s.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if s.Has(ModAlt) {
		b.WriteString("M-")
	}
	if s.Has(ModShift) {
		b.WriteString("S-")
	}
	switch {
	case namedKeys[s.Key] != "":
		b.WriteString(namedKeys[s.Key])
	case len(s.Key) > 1 && s.Key[0] == 'f':
		b.WriteString(strings.ToUpper(s.Key))
	default:
		b.WriteString(s.Key)
	}
	return b.String(), nil
}
