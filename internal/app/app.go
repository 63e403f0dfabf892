package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atomicstack/tmux-overview/internal/backend"
	"github.com/atomicstack/tmux-overview/internal/cache"
	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/overlay"
	"github.com/atomicstack/tmux-overview/internal/registry"
	"github.com/atomicstack/tmux-overview/internal/settings"
	"github.com/atomicstack/tmux-overview/internal/tmux"
	"github.com/atomicstack/tmux-overview/internal/ui"
	"github.com/atomicstack/tmux-overview/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	BackendTmux = "tmux"
	BackendMock = "mock"
)

// Config describes user-provided application options.
type Config struct {
	Backend          string
	SocketPath       string
	Width            int
	Height           int
	Columns          int
	CacheFile        string
	SettingsFile     string
	ThumbnailLines   int
	ThumbnailWorkers int
	Fuzzy            bool
	IMECommand       []string
	ShowFooter       bool
}

// Runtime is the wired engine shared by the popup and the subcommands.
type Runtime struct {
	Config     Config
	Settings   *settings.Store
	Cache      *cache.Store
	Writer     *cache.Writer
	Registry   *registry.Registry
	System     backend.WindowSystem
	Service    *backend.Service
	Controller *overlay.Controller
}

// DefaultCachePath returns the cache location used when none is configured.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tmux-overview", "windows.db"), nil
}

// Open loads settings and the cached window list, then wires the window
// service, registry and controller. Cache problems are logged and the
// runtime continues without persistence.
func Open(ctx context.Context, cfg Config) (*Runtime, error) {
	settingsPath := cfg.SettingsFile
	if settingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve settings path: %w", err)
		}
		settingsPath = p
	}
	prefs, err := settings.Open(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	rt := &Runtime{Config: cfg, Settings: prefs}
	rt.Cache = openCache(cfg.CacheFile)

	var persister registry.Persister
	if rt.Cache != nil {
		rt.Writer = cache.NewWriter(rt.Cache)
		persister = rt.Writer
	}
	rt.Registry = registry.New(persister)
	rt.Registry.Bootstrap(cache.LoadSnapshot(ctx, rt.Cache))

	system, err := newSystem(cfg, prefs)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.System = system

	rt.Service = backend.NewService(system, prefs,
		backend.WithIMECommand(cfg.IMECommand),
		backend.WithRefreshOptions(
			backend.WithWorkers(cfg.ThumbnailWorkers),
			backend.WithMinInterval(250*time.Millisecond),
		),
	)

	mode := state.MatchSubstring
	if cfg.Fuzzy {
		mode = state.MatchFuzzy
	}
	rt.Controller = overlay.New(rt.Service, rt.Registry, prefs, overlay.Options{
		Columns: cfg.Columns,
		Mode:    mode,
	})
	return rt, nil
}

func openCache(path string) *cache.Store {
	if path == "" {
		p, err := DefaultCachePath()
		if err != nil {
			logging.Error(fmt.Errorf("resolve cache path: %w", err))
			return nil
		}
		path = p
	}
	store, err := cache.Open(path)
	if err != nil {
		logging.Error(err)
		return nil
	}
	return store
}

func newSystem(cfg Config, prefs *settings.Store) (backend.WindowSystem, error) {
	switch cfg.Backend {
	case BackendMock:
		return backend.NewMockSystem(), nil
	case BackendTmux, "":
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("resolve socket path: %w", err)
	}
	opts := []tmux.SystemOption{
		tmux.WithPreviewLines(cfg.ThumbnailLines),
		tmux.WithPopup(tmux.Popup{Command: popupCommand(cfg, socketPath)}),
	}
	if os.Getenv("TMUX_OVERVIEW_POPUP") == "" {
		opts = append(opts, tmux.WithSkipWindow(tmux.CurrentWindowID(socketPath)))
	}
	if sc, err := settings.ParseShortcut(prefs.Shortcut()); err == nil {
		if key, err := sc.TmuxKey(); err == nil {
			opts = append(opts, tmux.WithBoundKey(key))
		}
	}
	return tmux.NewSystem(socketPath, opts...), nil
}

// popupCommand is the command line the bound shortcut runs inside the popup.
func popupCommand(cfg Config, socketPath string) []string {
	exe, err := os.Executable()
	if err != nil || exe == "" {
		exe = "tmux-overview"
	}
	argv := []string{exe, "--socket", socketPath}
	if cfg.CacheFile != "" {
		argv = append(argv, "--cache-file", cfg.CacheFile)
	}
	if cfg.SettingsFile != "" {
		argv = append(argv, "--settings-file", cfg.SettingsFile)
	}
	if cfg.Fuzzy {
		argv = append(argv, "--fuzzy")
	}
	return argv
}

// Close stops background refreshes and flushes pending cache writes.
func (r *Runtime) Close() {
	if r.Service != nil {
		r.Service.Close()
	}
	if r.Writer != nil {
		r.Writer.Close()
	}
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			logging.Error(fmt.Errorf("close cache: %w", err))
		}
	}
}

// Refresh requests a window refresh and applies events until it completes
// or ctx ends.
func (r *Runtime) Refresh(ctx context.Context) error {
	if err := r.Service.RefreshWindowsAsync(); err != nil {
		return fmt.Errorf("refresh windows: %w", err)
	}
	return r.Controller.Drain(ctx, r.Service.Events())
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	rt, err := Open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.Settings.Watch(nil)

	model := ui.NewModel(rt.Controller, rt.Service.Events(), ui.Options{
		Width:        cfg.Width,
		Height:       cfg.Height,
		Columns:      cfg.Columns,
		ShowFooter:   cfg.ShowFooter,
		PreviewLines: min(cfg.ThumbnailLines, 6),
	})
	rt.Service.Show()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
