package tmux

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-overview/internal/thumbnail"
)

// Thumbnail captures the visible text of the window's active pane.
func (s *System) Thumbnail(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("capture: empty window id")
	}
	args := append(baseArgs(s.socket), "capture-pane", "-p", "-J", "-t", id)
	output, err := runExecCommand(ctx, "tmux", args...).Output()
	if err != nil {
		return "", fmt.Errorf("capture window %s: %w", id, err)
	}
	lines := splitPreviewLines(string(output))
	if len(lines) > s.previewLines {
		lines = lines[len(lines)-s.previewLines:]
	}
	return thumbnail.EncodeText(lines), nil
}

func splitPreviewLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
