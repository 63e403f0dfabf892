package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-overview/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBackend          = "TMUX_OVERVIEW_BACKEND"
	envSocketPath       = "TMUX_OVERVIEW_SOCKET"
	envWidth            = "TMUX_OVERVIEW_WIDTH"
	envHeight           = "TMUX_OVERVIEW_HEIGHT"
	envColumns          = "TMUX_OVERVIEW_COLUMNS"
	envCacheFile        = "TMUX_OVERVIEW_CACHE_FILE"
	envSettingsFile     = "TMUX_OVERVIEW_SETTINGS_FILE"
	envThumbnailLines   = "TMUX_OVERVIEW_THUMBNAIL_LINES"
	envThumbnailWorkers = "TMUX_OVERVIEW_THUMBNAIL_WORKERS"
	envFuzzy            = "TMUX_OVERVIEW_FUZZY"
	envIMECommand       = "TMUX_OVERVIEW_IME_COMMAND"
	envShowFooter       = "TMUX_OVERVIEW_FOOTER"
	envTrace            = "TMUX_OVERVIEW_TRACE"
	envLogFile          = "TMUX_OVERVIEW_LOG_FILE"
)

// Binding holds flag values registered on a FlagSet until they are resolved
// into a Config.
type Binding struct {
	fs *pflag.FlagSet

	backend          *string
	socket           *string
	width            *int
	height           *int
	columns          *int
	cacheFile        *string
	settingsFile     *string
	thumbnailLines   *int
	thumbnailWorkers *int
	fuzzy            *bool
	imeCommand       *string
	footer           *bool
	trace            *bool
	logFile          *string
}

// Bind registers every runtime flag on fs. Environment variables from
// environ become the flag defaults.
func Bind(fs *pflag.FlagSet, environ []string) *Binding {
	env := parseEnv(environ)
	return &Binding{
		fs:               fs,
		backend:          fs.String("backend", envOrDefault(env, envBackend, app.BackendTmux), "window source: tmux or mock"),
		socket:           fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)"),
		width:            fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:           fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		columns:          fs.Int("columns", envOrInt(env, envColumns, 0), "fixed grid column count (0 fits the width)"),
		cacheFile:        fs.String("cache-file", envOrDefault(env, envCacheFile, ""), "path to the window list cache"),
		settingsFile:     fs.String("settings-file", envOrDefault(env, envSettingsFile, ""), "path to the settings file"),
		thumbnailLines:   fs.Int("thumbnail-lines", envOrInt(env, envThumbnailLines, 12), "pane lines kept per thumbnail"),
		thumbnailWorkers: fs.Int("thumbnail-workers", envOrInt(env, envThumbnailWorkers, 4), "concurrent thumbnail captures"),
		fuzzy:            fs.Bool("fuzzy", envOrBool(env, envFuzzy, false), "match search terms as fuzzy subsequences"),
		imeCommand:       fs.String("ime-command", envOrDefault(env, envIMECommand, ""), "command that selects an English input source"),
		footer:           fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)"),
		trace:            fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:          fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// Resolve validates the parsed flags and builds the Config. args are the
// raw command-line arguments, kept for tracing.
func (b *Binding) Resolve(args []string) (Config, error) {
	backend := strings.ToLower(strings.TrimSpace(*b.backend))
	cfg := Config{
		App: app.Config{
			Backend:          backend,
			SocketPath:       *b.socket,
			Width:            *b.width,
			Height:           *b.height,
			Columns:          *b.columns,
			CacheFile:        *b.cacheFile,
			SettingsFile:     *b.settingsFile,
			ThumbnailLines:   *b.thumbnailLines,
			ThumbnailWorkers: *b.thumbnailWorkers,
			Fuzzy:            *b.fuzzy,
			IMECommand:       splitCommand(*b.imeCommand),
			ShowFooter:       *b.footer,
		},
		Logging: Logging{
			FilePath: *b.logFile,
			Trace:    *b.trace,
		},
		Flags: map[string]string{},
		Args:  append([]string(nil), args...),
	}
	b.fs.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = f.Value.String()
	})
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("tmux-overview", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	b := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return b.Resolve(args)
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	switch cfg.App.Backend {
	case app.BackendTmux, app.BackendMock:
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", app.BackendTmux, app.BackendMock, cfg.App.Backend)
	}
	for name, v := range map[string]int{
		"width":   cfg.App.Width,
		"height":  cfg.App.Height,
		"columns": cfg.App.Columns,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0 (got %d)", name, v)
		}
	}
	if cfg.App.ThumbnailLines < 1 {
		return fmt.Errorf("thumbnail-lines must be >= 1 (got %d)", cfg.App.ThumbnailLines)
	}
	if cfg.App.ThumbnailWorkers < 1 {
		return fmt.Errorf("thumbnail-workers must be >= 1 (got %d)", cfg.App.ThumbnailWorkers)
	}
	return nil
}

func splitCommand(value string) []string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
