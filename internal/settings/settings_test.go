package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseShortcutCanonicalises(t *testing.T) {
	cases := map[string]string{
		"alt+space":       "alt+space",
		"Option+Space":    "alt+space",
		"shift+ctrl+K":    "ctrl+shift+k",
		"M-space":         "alt+space",
		"C-M-a":           "ctrl+alt+a",
		"f13":             "f13",
		"command+shift+o": "shift+super+o",
	}
	for input, want := range cases {
		sc, err := ParseShortcut(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got := sc.String(); got != want {
			t.Fatalf("parse %q: expected %q, got %q", input, want, got)
		}
	}
}

func TestParseShortcutRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "  ", "hyper+a", "alt+alt+a", "alt+shift", "ctrl+f99", "alt+space bar"} {
		if _, err := ParseShortcut(input); !errors.Is(err, ErrInvalidShortcut) {
			t.Fatalf("expected %q to be rejected, got %v", input, err)
		}
	}
}

func TestTmuxKey(t *testing.T) {
	cases := map[string]string{
		"alt+space":     "M-Space",
		"ctrl+alt+k":    "C-M-k",
		"shift+f5":      "S-F5",
		"ctrl+pageup":   "C-PageUp",
		"alt+backspace": "M-BSpace",
	}
	for input, want := range cases {
		sc, err := ParseShortcut(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		got, err := sc.TmuxKey()
		if err != nil {
			t.Fatalf("tmux key %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("tmux key %q: expected %q, got %q", input, want, got)
		}
	}
	sc, _ := ParseShortcut("super+a")
	if _, err := sc.TmuxKey(); err == nil {
		t.Fatalf("expected super modifier to be rejected for tmux")
	}
}

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Shortcut() != DefaultShortcut {
		t.Fatalf("expected default shortcut, got %q", store.Shortcut())
	}
	if store.DisableIME() {
		t.Fatalf("expected disableIME false by default")
	}
}

func TestSetShortcutPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.SetShortcut("Ctrl+Alt+O"); err != nil {
		t.Fatalf("set shortcut: %v", err)
	}
	if err := store.SetDisableIME(true); err != nil {
		t.Fatalf("set disableIME: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "ctrl+alt+o") {
		t.Fatalf("expected shortcut written, got %q", data)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Shortcut() != "ctrl+alt+o" || !reopened.DisableIME() {
		t.Fatalf("expected persisted settings, got %#v", reopened.Current())
	}
}

func TestSetShortcutInvalidKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store, _ := Open(path)
	if err := store.SetShortcut("ctrl+k"); err != nil {
		t.Fatalf("set shortcut: %v", err)
	}
	if err := store.SetShortcut("banana+k"); !errors.Is(err, ErrInvalidShortcut) {
		t.Fatalf("expected invalid shortcut error, got %v", err)
	}
	if store.Shortcut() != "ctrl+k" {
		t.Fatalf("expected previous shortcut kept, got %q", store.Shortcut())
	}
	reopened, _ := Open(path)
	if reopened.Shortcut() != "ctrl+k" {
		t.Fatalf("expected saved shortcut unchanged, got %q", reopened.Shortcut())
	}
}

func TestOpenCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("shortcut = [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Shortcut() != DefaultShortcut {
		t.Fatalf("expected default shortcut, got %q", store.Shortcut())
	}
}

func TestOpenIgnoresInvalidSavedShortcut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("shortcut = \"nope+x\"\ndisable_ime = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, _ := Open(path)
	if store.Shortcut() != DefaultShortcut || !store.DisableIME() {
		t.Fatalf("expected default shortcut with saved IME flag, got %#v", store.Current())
	}
}
