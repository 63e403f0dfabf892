package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/window"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchMode selects the per-term predicate used by the filter.
type MatchMode int

const (
	// MatchSubstring requires each term to appear verbatim (case-insensitively).
	MatchSubstring MatchMode = iota
	// MatchFuzzy accepts each term as an ordered subsequence.
	MatchFuzzy
)

// Terms normalises a raw query into lower-case whitespace-separated terms.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// Matches reports whether rec satisfies every term against its application
// name or title.
func Matches(rec window.Record, terms []string, mode MatchMode) bool {
	app := strings.ToLower(rec.AppName)
	title := strings.ToLower(rec.Title)
	for _, term := range terms {
		if !termMatches(term, app, mode) && !termMatches(term, title, mode) {
			return false
		}
	}
	return true
}

func termMatches(term, field string, mode MatchMode) bool {
	if mode == MatchFuzzy {
		return fuzzy.MatchNormalizedFold(term, field)
	}
	return strings.Contains(field, term)
}

// FilterRecords returns the records matching query in their original order.
func FilterRecords(records []window.Record, query string, mode MatchMode) []window.Record {
	terms := Terms(query)
	if len(terms) == 0 {
		return window.Clone(records)
	}
	filtered := make([]window.Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, terms, mode) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// SetQuery replaces the search text and caret, then re-derives the view.
func (o *Overview) SetQuery(query string, cursor int) {
	o.Query = query
	runes := []rune(o.Query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	o.QueryCursor = cursor
	o.Sync()
	events.Filter.Query(o.Query, len(o.view))
}

// QueryCursorPos returns the rune offset of the search caret.
func (o *Overview) QueryCursorPos() int {
	runes := []rune(o.Query)
	if o.QueryCursor < 0 {
		return 0
	}
	if o.QueryCursor > len(runes) {
		return len(runes)
	}
	return o.QueryCursor
}

// InsertQueryText inserts text at the caret.
func (o *Overview) InsertQueryText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(o.Query)
	pos := o.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	o.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteQueryRuneBackward deletes the rune before the caret.
func (o *Overview) DeleteQueryRuneBackward() bool {
	runes := []rune(o.Query)
	pos := o.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	o.SetQuery(string(updated), pos-1)
	return true
}

// DeleteQueryWordBackward deletes the word preceding the caret.
func (o *Overview) DeleteQueryWordBackward() bool {
	runes := []rune(o.Query)
	pos := o.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStartBefore(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	o.SetQuery(string(updated), i)
	events.Filter.WordBackspace(o.Query)
	return true
}

// ClearQuery empties the search text.
func (o *Overview) ClearQuery() bool {
	if o.Query == "" {
		return false
	}
	o.SetQuery("", 0)
	return true
}

// MoveQueryCursorStart moves the caret to the start.
func (o *Overview) MoveQueryCursorStart() bool {
	return o.moveQueryCursor(0)
}

// MoveQueryCursorEnd moves the caret to the end.
func (o *Overview) MoveQueryCursorEnd() bool {
	return o.moveQueryCursor(len([]rune(o.Query)))
}

// MoveQueryCursorWordBackward moves the caret to the previous word start.
func (o *Overview) MoveQueryCursorWordBackward() bool {
	return o.moveQueryCursor(wordStartBefore([]rune(o.Query), o.QueryCursorPos()))
}

// MoveQueryCursorWordForward moves the caret past the next word.
func (o *Overview) MoveQueryCursorWordForward() bool {
	runes := []rune(o.Query)
	i := o.QueryCursorPos()
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return o.moveQueryCursor(i)
}

// MoveQueryCursorRuneBackward moves the caret one rune left.
func (o *Overview) MoveQueryCursorRuneBackward() bool {
	return o.moveQueryCursor(o.QueryCursorPos() - 1)
}

// MoveQueryCursorRuneForward moves the caret one rune right.
func (o *Overview) MoveQueryCursorRuneForward() bool {
	return o.moveQueryCursor(o.QueryCursorPos() + 1)
}

func (o *Overview) moveQueryCursor(pos int) bool {
	end := len([]rune(o.Query))
	if pos < 0 {
		pos = 0
	}
	if pos > end {
		pos = end
	}
	if pos == o.QueryCursorPos() {
		return false
	}
	o.QueryCursor = pos
	events.Filter.Cursor(pos)
	return true
}

func wordStartBefore(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
