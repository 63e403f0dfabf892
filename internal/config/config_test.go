package config

import (
	"strings"
	"testing"

	"github.com/atomicstack/tmux-overview/internal/app"
	"github.com/google/go-cmp/cmp"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	want := app.Config{
		Backend:          app.BackendTmux,
		ThumbnailLines:   12,
		ThumbnailWorkers: 4,
	}
	if diff := cmp.Diff(want, cfg.App); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected trace disabled by default")
	}
	if cfg.Flags["backend"] != "tmux" {
		t.Fatalf("expected flag snapshot to record backend, got %v", cfg.Flags)
	}
}

func TestLoadArgsEnvironmentAndFlags(t *testing.T) {
	env := []string{
		"TMUX_OVERVIEW_BACKEND=mock",
		"TMUX_OVERVIEW_WIDTH=100",
		"TMUX_OVERVIEW_FUZZY=true",
		"TMUX_OVERVIEW_IME_COMMAND=im-select com.apple.keylayout.ABC",
		"TMUX_OVERVIEW_TRACE=1",
		"TMUX_OVERVIEW_THUMBNAIL_LINES=not-a-number",
	}
	cfg, err := LoadArgs([]string{"--width", "80", "--columns=3", "--log-file", "/tmp/x.log"}, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Backend != app.BackendMock {
		t.Fatalf("expected env backend, got %q", cfg.App.Backend)
	}
	if cfg.App.Width != 80 {
		t.Fatalf("expected flag to override env width, got %d", cfg.App.Width)
	}
	if cfg.App.Columns != 3 || !cfg.App.Fuzzy {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if diff := cmp.Diff([]string{"im-select", "com.apple.keylayout.ABC"}, cfg.App.IMECommand); diff != "" {
		t.Fatalf("ime command mismatch (-want +got):\n%s", diff)
	}
	if cfg.App.ThumbnailLines != 12 {
		t.Fatalf("expected malformed env to fall back, got %d", cfg.App.ThumbnailLines)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/x.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := map[string][]string{
		"backend": {"--backend", "x11"},
		"width":   {"--width", "-1"},
		"lines":   {"--thumbnail-lines", "0"},
		"workers": {"--thumbnail-workers", "0"},
		"unknown": {"--nope"},
	}
	for name, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("%s: expected error for %v", name, args)
		}
	}
}

func TestValidateMessageNamesField(t *testing.T) {
	_, err := LoadArgs([]string{"--height=-4"}, nil)
	if err == nil || !strings.Contains(err.Error(), "height") {
		t.Fatalf("expected height error, got %v", err)
	}
}
