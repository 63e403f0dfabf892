package registry

import (
	"testing"

	"github.com/atomicstack/tmux-overview/internal/window"
	"github.com/google/go-cmp/cmp"
)

type recordingPersister struct {
	snapshots [][]window.Record
}

func (p *recordingPersister) Persist(records []window.Record) {
	p.snapshots = append(p.snapshots, records)
}

func TestBootstrapDoesNotPersist(t *testing.T) {
	p := &recordingPersister{}
	reg := New(p)
	reg.Bootstrap(window.Samples())

	if reg.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", reg.Len())
	}
	if len(p.snapshots) != 0 {
		t.Fatalf("expected bootstrap to skip persistence, got %d writes", len(p.snapshots))
	}
}

func TestApplyListCarriesThumbnailForward(t *testing.T) {
	p := &recordingPersister{}
	reg := New(p)
	reg.Bootstrap([]window.Record{
		{ID: "A", Title: "a", AppName: "X", Thumbnail: "T"},
		{ID: "B", Title: "b", AppName: "Y", Thumbnail: "U"},
	})

	reg.ApplyList([]window.Record{
		{ID: "A", Title: "a2", AppName: "X"},
		{ID: "C", Title: "c", AppName: "Z"},
	})

	want := []window.Record{
		{ID: "A", Title: "a2", AppName: "X", Thumbnail: "T"},
		{ID: "C", Title: "c", AppName: "Z"},
	}
	if diff := cmp.Diff(want, reg.Records()); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
	if len(p.snapshots) != 1 {
		t.Fatalf("expected one persisted snapshot, got %d", len(p.snapshots))
	}
	if diff := cmp.Diff(want, p.snapshots[0]); diff != "" {
		t.Fatalf("unexpected persisted snapshot (-want +got):\n%s", diff)
	}
}

func TestApplyListPrefersIncomingThumbnail(t *testing.T) {
	reg := New(nil)
	reg.Bootstrap([]window.Record{{ID: "A", Thumbnail: "old"}})
	reg.ApplyList([]window.Record{{ID: "A", Thumbnail: "new"}})

	rec, ok := reg.Lookup("A")
	if !ok || rec.Thumbnail != "new" {
		t.Fatalf("expected incoming thumbnail to win, got %#v", rec)
	}
}

func TestApplyListDropsDuplicateIDs(t *testing.T) {
	reg := New(nil)
	reg.ApplyList([]window.Record{
		{ID: "A", Title: "first"},
		{ID: "B", Title: "b"},
		{ID: "A", Title: "second"},
	})
	got := reg.Records()
	if len(got) != 2 {
		t.Fatalf("expected duplicates dropped, got %#v", got)
	}
	if got[0].Title != "first" {
		t.Fatalf("expected first occurrence kept, got %q", got[0].Title)
	}
}

func TestApplyThumbnailUnknownIDIsNoOp(t *testing.T) {
	p := &recordingPersister{}
	reg := New(p)
	reg.Bootstrap([]window.Record{{ID: "A", Title: "a"}})
	before := reg.Version()

	if reg.ApplyThumbnail("Z", "T") {
		t.Fatalf("expected unknown id to be ignored")
	}
	if reg.ApplyThumbnail("A", "") {
		t.Fatalf("expected empty payload to be ignored")
	}
	if reg.Version() != before {
		t.Fatalf("expected version unchanged, got %d -> %d", before, reg.Version())
	}
	if len(p.snapshots) != 0 {
		t.Fatalf("expected no writes for no-op, got %d", len(p.snapshots))
	}

	if !reg.ApplyThumbnail("A", "T") {
		t.Fatalf("expected thumbnail applied")
	}
	rec, _ := reg.Lookup("A")
	if rec.Thumbnail != "T" {
		t.Fatalf("expected thumbnail T, got %q", rec.Thumbnail)
	}
	if len(p.snapshots) != 1 {
		t.Fatalf("expected a write after thumbnail, got %d", len(p.snapshots))
	}
}

func TestObserversRunAfterEveryMutation(t *testing.T) {
	reg := New(nil)
	calls := 0
	reg.Subscribe(func() {
		calls++
		_ = reg.Records()
	})
	reg.Bootstrap([]window.Record{{ID: "A"}})
	reg.ApplyList([]window.Record{{ID: "A"}, {ID: "B"}})
	reg.ApplyThumbnail("B", "T")
	reg.ApplyThumbnail("missing", "T")

	if calls != 3 {
		t.Fatalf("expected 3 observer calls, got %d", calls)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	reg := New(nil)
	reg.Bootstrap([]window.Record{{ID: "A", Title: "a"}})
	got := reg.Records()
	got[0].Title = "mutated"
	if rec, _ := reg.Lookup("A"); rec.Title != "a" {
		t.Fatalf("expected registry isolated from callers, got %q", rec.Title)
	}
}
