package tmux

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tmux-overview/internal/testutil"
	"github.com/atomicstack/tmux-overview/internal/thumbnail"
)

func TestIntegrationListAndCapture(t *testing.T) {
	socket := testutil.StartTmuxServer(t, "overview-test")
	if err := testutil.TmuxCommand(socket, "new-window", "-t", "overview-test", "-n", "second", "sh", "-c", "echo overview-marker; sleep 600").Run(); err != nil {
		t.Fatalf("new-window: %v", err)
	}

	sys := NewSystem(socket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	records, err := sys.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) < 2 {
		t.Fatalf("expected at least two windows, got %d", len(records))
	}
	var secondID string
	for _, rec := range records {
		if strings.HasSuffix(rec.Title, " second") {
			secondID = rec.ID
		}
	}
	if secondID == "" {
		t.Fatalf("window 'second' not listed: %+v", records)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		payload, err := sys.Thumbnail(ctx, secondID)
		if err != nil {
			t.Fatalf("Thumbnail: %v", err)
		}
		lines, err := thumbnail.DecodeText(payload)
		if err != nil {
			t.Fatalf("DecodeText: %v", err)
		}
		if strings.Contains(strings.Join(lines, "\n"), "overview-marker") {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("marker never captured, got %q", lines)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
