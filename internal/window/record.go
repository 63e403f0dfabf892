package window

import "strings"

// Record is one switchable window as shown in the overview grid.
type Record struct {
	ID              string `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	AppName         string `json:"appName" yaml:"appName"`
	IsTitleFallback bool   `json:"isTitleFallback" yaml:"isTitleFallback"`
	Thumbnail       string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// HasThumbnail reports whether a preview payload is attached.
func (r Record) HasThumbnail() bool {
	return r.Thumbnail != ""
}

// DisplayTitle returns the title, or the application name when the title is blank.
func (r Record) DisplayTitle() string {
	if strings.TrimSpace(r.Title) == "" {
		return r.AppName
	}
	return r.Title
}

// WithFallbackTitle fills an empty title from the application name and marks
// the record accordingly.
func (r Record) WithFallbackTitle() Record {
	if strings.TrimSpace(r.Title) != "" {
		return r
	}
	r.Title = r.AppName
	r.IsTitleFallback = true
	return r
}

// Clone returns a copy of records that shares no backing array with the input.
func Clone(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]Record, len(records))
	copy(dup, records)
	return dup
}

// IDs lists record identifiers in order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	return ids
}
