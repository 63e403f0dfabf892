package state

import (
	"reflect"
	"testing"

	"github.com/atomicstack/tmux-overview/internal/window"
)

type staticSource struct {
	records []window.Record
	version uint64
}

func (s *staticSource) Records() []window.Record { return window.Clone(s.records) }
func (s *staticSource) Version() uint64          { return s.version }

func (s *staticSource) set(records ...window.Record) {
	s.records = records
	s.version++
}

func newTestOverview(records ...window.Record) (*Overview, *staticSource) {
	src := &staticSource{records: records, version: 1}
	return NewOverview(src, MatchSubstring), src
}

func rec(id, title, app string) window.Record {
	return window.Record{ID: id, Title: title, AppName: app}
}

func TestTermsNormalisesQuery(t *testing.T) {
	got := Terms("  Code   EDITOR\t")
	want := []string{"code", "editor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(Terms("   ")) != 0 {
		t.Fatalf("expected no terms for blank query")
	}
}

func TestFilterRequiresEveryTerm(t *testing.T) {
	records := []window.Record{
		rec("1", "Inbox", "Mail"),
		rec("2", "Code review", "Browser"),
		rec("3", "editor", "Code"),
	}

	got := window.IDs(FilterRecords(records, "code", MatchSubstring))
	if !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Fatalf("expected ids [2 3], got %v", got)
	}

	got = window.IDs(FilterRecords(records, "code editor", MatchSubstring))
	if !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("expected terms split across fields to match id 3, got %v", got)
	}

	got = window.IDs(FilterRecords(records, "review mail", MatchSubstring))
	if len(got) != 0 {
		t.Fatalf("expected no record to satisfy both terms, got %v", got)
	}
}

func TestFilterEmptyQueryKeepsOrder(t *testing.T) {
	records := window.Samples()
	got := FilterRecords(records, "  ", MatchSubstring)
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("expected unfiltered registry order, got %#v", got)
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	records := []window.Record{rec("1", "Design Board", "Figma")}
	if len(FilterRecords(records, "FIGMA board", MatchSubstring)) != 1 {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestFuzzyModeMatchesSubsequence(t *testing.T) {
	records := []window.Record{rec("1", "product specs", "Notion"), rec("2", "browser", "Arc")}
	if got := FilterRecords(records, "pdspc", MatchSubstring); len(got) != 0 {
		t.Fatalf("expected substring mode to reject subsequence, got %v", window.IDs(got))
	}
	got := window.IDs(FilterRecords(records, "pdspc ntn", MatchFuzzy))
	if !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("expected fuzzy mode to match id 1, got %v", got)
	}
}

func TestSetQueryRecomputesView(t *testing.T) {
	o, _ := newTestOverview(window.Samples()...)
	o.SetQuery("figma", len("figma"))
	if len(o.View()) != 1 || o.View()[0].ID != "3" {
		t.Fatalf("expected only figma, got %v", window.IDs(o.View()))
	}
	if o.Selection.Index() != 0 {
		t.Fatalf("expected selection clamped to 0, got %d", o.Selection.Index())
	}
	o.SetQuery("nothing matches", 0)
	if len(o.View()) != 0 || o.Selection.Index() != None {
		t.Fatalf("expected empty view with no selection, got %d/%d", len(o.View()), o.Selection.Index())
	}
	o.SetQuery("", 0)
	if len(o.View()) != 4 || o.Selection.Index() != 0 {
		t.Fatalf("expected restored view selecting first, got %d/%d", len(o.View()), o.Selection.Index())
	}
}

func TestSyncFollowsSourceVersion(t *testing.T) {
	o, src := newTestOverview(rec("1", "a", "x"), rec("2", "b", "x"), rec("3", "c", "x"))
	o.Select(2)
	src.set(rec("1", "a", "x"))
	o.Sync()
	if len(o.View()) != 1 {
		t.Fatalf("expected view refreshed from source, got %d", len(o.View()))
	}
	if o.Selection.Index() != 0 {
		t.Fatalf("expected selection clamped to 0, got %d", o.Selection.Index())
	}
}

func TestInsertAndDeleteQueryText(t *testing.T) {
	o, _ := newTestOverview(rec("1", "alpha", "x"))

	if !o.InsertQueryText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if o.Query != "ab" || o.QueryCursor != 2 {
		t.Fatalf("unexpected query state %q/%d", o.Query, o.QueryCursor)
	}

	o.QueryCursor = 1
	if !o.InsertQueryText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if o.Query != "azb" || o.QueryCursor != 2 {
		t.Fatalf("unexpected query state %q/%d", o.Query, o.QueryCursor)
	}

	if !o.DeleteQueryRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if o.Query != "ab" || o.QueryCursor != 1 {
		t.Fatalf("unexpected query state after delete %q/%d", o.Query, o.QueryCursor)
	}

	o.SetQuery("abc def", len("abc def"))
	if !o.DeleteQueryWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if o.Query != "abc " {
		t.Fatalf("expected trailing word removed, got %q", o.Query)
	}

	o.SetQuery("abc", 0)
	if o.DeleteQueryRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if !o.ClearQuery() || o.Query != "" {
		t.Fatalf("expected query cleared, got %q", o.Query)
	}
	if o.ClearQuery() {
		t.Fatal("expected clearing an empty query to report no change")
	}
}

func TestQueryCursorNavigation(t *testing.T) {
	o, _ := newTestOverview()
	o.SetQuery("one two", len("one two"))

	if !o.MoveQueryCursorWordBackward() || o.QueryCursor != 4 {
		t.Fatalf("expected cursor at 4, got %d", o.QueryCursor)
	}
	if !o.MoveQueryCursorStart() || o.QueryCursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", o.QueryCursor)
	}
	if o.MoveQueryCursorRuneBackward() {
		t.Fatal("expected no movement past start")
	}
	if !o.MoveQueryCursorWordForward() || o.QueryCursor != 4 {
		t.Fatalf("expected cursor at 4, got %d", o.QueryCursor)
	}
	if !o.MoveQueryCursorRuneForward() || o.QueryCursor != 5 {
		t.Fatalf("expected cursor at 5, got %d", o.QueryCursor)
	}
	if !o.MoveQueryCursorEnd() || o.QueryCursor != 7 {
		t.Fatalf("expected cursor at 7, got %d", o.QueryCursor)
	}
	if o.MoveQueryCursorEnd() {
		t.Fatal("expected no movement when already at end")
	}
}
