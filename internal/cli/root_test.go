package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-overview/internal/app"
	"github.com/atomicstack/tmux-overview/internal/settings"
	"github.com/atomicstack/tmux-overview/internal/window"
	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func mockArgs(t *testing.T, dir string, args ...string) []string {
	t.Helper()
	return append(args,
		"--backend", "mock",
		"--cache-file", filepath.Join(dir, "windows.db"),
		"--settings-file", filepath.Join(dir, "config.toml"),
		"--log-file", filepath.Join(dir, "overview.log"),
	)
}

func run(t *testing.T, args []string) (string, error) {
	t.Helper()
	root := NewRootCommand(args, nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestListPrintsCachedSamplesAsJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, mockArgs(t, dir, "list", "--format", "json"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []window.Record
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if diff := cmp.Diff(window.Samples(), got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestListRefreshFiltersByQuery(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, mockArgs(t, dir, "list", "--refresh", "--format", "yaml", "design", "board"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []window.Record
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].AppName != "Figma" {
		t.Fatalf("expected only Figma, got %+v", got)
	}
	if got[0].Thumbnail != "" {
		t.Fatalf("expected thumbnails omitted without --thumbnails")
	}
}

func TestListTableAndUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, mockArgs(t, dir, "list"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(out, "ID") || !strings.Contains(out, "Notion") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
	if _, err := run(t, mockArgs(t, dir, "list", "--format", "xml")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestShortcutSetAndShow(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, mockArgs(t, dir, "shortcut", "set", "Control+Alt+O"))
	if err != nil {
		t.Fatalf("shortcut set: %v", err)
	}
	if !strings.Contains(out, "ctrl+alt+o") {
		t.Fatalf("expected canonical shortcut in output, got %q", out)
	}
	out, err = run(t, mockArgs(t, dir, "shortcut"))
	if err != nil {
		t.Fatalf("shortcut: %v", err)
	}
	if strings.TrimSpace(out) != "ctrl+alt+o" {
		t.Fatalf("expected saved shortcut, got %q", out)
	}
}

func TestShortcutSetRejectsInvalidValue(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, mockArgs(t, dir, "shortcut", "set", "hyper+x"))
	if !errors.Is(err, settings.ErrInvalidShortcut) {
		t.Fatalf("expected ErrInvalidShortcut, got %v", err)
	}
	out, err := run(t, mockArgs(t, dir, "shortcut"))
	if err != nil {
		t.Fatalf("shortcut: %v", err)
	}
	if strings.TrimSpace(out) != settings.DefaultShortcut {
		t.Fatalf("expected default shortcut to remain, got %q", out)
	}
}

func TestBindRegistersSavedShortcut(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, mockArgs(t, dir, "bind"))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !strings.Contains(out, "M-Space") {
		t.Fatalf("expected tmux key in output, got %q", out)
	}
}

func TestThumbnailsExportWritesPNGs(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "png")
	out, err := run(t, mockArgs(t, dir, "thumbnails", "export", "--refresh", "--dir", outDir))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "wrote 4 thumbnails") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "window-1.png")); err != nil {
		t.Fatalf("expected window-1.png: %v", err)
	}
}

func TestRootRunsOverlayWithResolvedConfig(t *testing.T) {
	dir := t.TempDir()
	var got app.Config
	c := &cli{
		args: mockArgs(t, dir, "--columns", "3", "--fuzzy"),
		runOverlay: func(cfg app.Config) error {
			got = cfg
			return nil
		},
	}
	root := newRootCommand(c, []string{"TMUX_OVERVIEW_FOOTER=true"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Backend != app.BackendMock || got.Columns != 3 || !got.Fuzzy || !got.ShowFooter {
		t.Fatalf("unexpected overlay config %+v", got)
	}
}

func TestThumbnailFileName(t *testing.T) {
	if got := thumbnailFileName("@12"); got != "window-_12.png" {
		t.Fatalf("unexpected file name %q", got)
	}
}
