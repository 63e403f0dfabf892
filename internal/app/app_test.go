package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/tmux-overview/internal/backend"
	"github.com/atomicstack/tmux-overview/internal/window"
	"github.com/google/go-cmp/cmp"
)

func mockConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Backend:          BackendMock,
		CacheFile:        filepath.Join(dir, "cache", "windows.db"),
		SettingsFile:     filepath.Join(dir, "config.toml"),
		ThumbnailLines:   4,
		ThumbnailWorkers: 2,
	}
}

func TestOpenBootstrapsSamplesWithoutCache(t *testing.T) {
	rt, err := Open(context.Background(), mockConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rt.Close()
	if diff := cmp.Diff(window.Samples(), rt.Registry.Records()); diff != "" {
		t.Fatalf("bootstrap mismatch (-want +got):\n%s", diff)
	}
	if rt.Writer == nil {
		t.Fatalf("expected cache writer to be wired")
	}
}

func TestRefreshPersistsAndReloads(t *testing.T) {
	cfg := mockConfig(t)
	rt, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	mock := rt.System.(*backend.MockSystem)
	mock.Delay = 0
	mock.SetRecords([]window.Record{
		{ID: "a", Title: "alpha", AppName: "zsh"},
		{ID: "b", Title: "", AppName: "nvim"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	records := rt.Registry.Records()
	if ids := window.IDs(records); !cmp.Equal(ids, []string{"a", "b"}) {
		t.Fatalf("unexpected ids %v", ids)
	}
	for _, rec := range records {
		if !rec.HasThumbnail() {
			t.Fatalf("expected thumbnail for %s", rec.ID)
		}
	}
	if !records[1].IsTitleFallback || records[1].Title != "nvim" {
		t.Fatalf("expected fallback title, got %+v", records[1])
	}
	rt.Close()

	reopened, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if diff := cmp.Diff(records, reopened.Registry.Records()); diff != "" {
		t.Fatalf("cached records mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Backend = "wayland"
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestPopupCommandForwardsPaths(t *testing.T) {
	cfg := Config{CacheFile: "/c.db", SettingsFile: "/s.toml", Fuzzy: true}
	argv := popupCommand(cfg, "/tmp/sock")
	want := []string{"--socket", "/tmp/sock", "--cache-file", "/c.db", "--settings-file", "/s.toml", "--fuzzy"}
	if diff := cmp.Diff(want, argv[1:]); diff != "" {
		t.Fatalf("argv mismatch (-want +got):\n%s", diff)
	}
}
