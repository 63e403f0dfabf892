// Package settings stores the user-editable overlay preferences in a TOML
// file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DefaultShortcut is used when nothing valid has been saved.
const DefaultShortcut = "alt+space"

const (
	keyShortcut   = "shortcut"
	keyDisableIME = "disable_ime"
)

// Settings is the persisted preference record.
type Settings struct {
	Shortcut   string `mapstructure:"shortcut"`
	DisableIME bool   `mapstructure:"disable_ime"`
}

// Defaults returns the preferences used on first run.
func Defaults() Settings {
	return Settings{Shortcut: DefaultShortcut}
}

// Store reads and writes Settings through viper.
type Store struct {
	mu      sync.RWMutex
	v       *viper.Viper
	path    string
	current Settings
}

// DefaultPath returns <user config dir>/tmux-overview/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "tmux-overview", "config.toml"), nil
}

// Open loads the settings file at path. A missing or unreadable file yields
// defaults; it is not an error.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault(keyShortcut, DefaultShortcut)
	v.SetDefault(keyDisableIME, false)

	s := &Store{v: v, path: path}
	fromDisk := true
	if err := v.ReadInConfig(); err != nil {
		fromDisk = false
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Error(fmt.Errorf("read settings %s: %w", path, err))
		}
	}
	s.current = s.decode()
	events.Settings.Load(path, fromDisk)
	return s, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Current returns a copy of the loaded preferences.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Shortcut returns the saved global shortcut.
func (s *Store) Shortcut() string {
	return s.Current().Shortcut
}

// DisableIME reports whether the overlay should switch to an English input
// source when shown.
func (s *Store) DisableIME() bool {
	return s.Current().DisableIME
}

// SetShortcut validates and saves a new shortcut. The saved value is left
// untouched when validation or writing fails.
func (s *Store) SetShortcut(value string) error {
	sc, err := ParseShortcut(value)
	if err != nil {
		return err
	}
	next := s.Current()
	next.Shortcut = sc.String()
	if err := s.Save(next); err != nil {
		return err
	}
	events.Settings.Shortcut(next.Shortcut)
	return nil
}

// SetDisableIME saves the input-source preference.
func (s *Store) SetDisableIME(disable bool) error {
	next := s.Current()
	next.DisableIME = disable
	return s.Save(next)
}

// Save validates and writes next in full.
func (s *Store) Save(next Settings) error {
	sc, err := ParseShortcut(next.Shortcut)
	if err != nil {
		return err
	}
	next.Shortcut = sc.String()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	prevShortcut := s.v.Get(keyShortcut)
	prevIME := s.v.Get(keyDisableIME)
	s.v.Set(keyShortcut, next.Shortcut)
	s.v.Set(keyDisableIME, next.DisableIME)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		s.v.Set(keyShortcut, prevShortcut)
		s.v.Set(keyDisableIME, prevIME)
		return fmt.Errorf("write settings: %w", err)
	}
	s.current = next
	return nil
}

// Watch reloads the file when it changes on disk and calls fn with the new
// preferences.
func (s *Store) Watch(fn func(Settings)) {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		s.mu.Lock()
		s.current = s.decode()
		current := s.current
		s.mu.Unlock()
		events.Settings.Reload(e.Name)
		if fn != nil {
			fn(current)
		}
	})
	s.v.WatchConfig()
}

func (s *Store) decode() Settings {
	out := Defaults()
	var raw Settings
	if err := s.v.Unmarshal(&raw); err != nil {
		logging.Error(fmt.Errorf("decode settings: %w", err))
		return out
	}
	if sc, err := ParseShortcut(raw.Shortcut); err == nil {
		out.Shortcut = sc.String()
	} else {
		logging.Error(fmt.Errorf("saved shortcut ignored: %w", err))
	}
	out.DisableIME = raw.DisableIME
	return out
}
