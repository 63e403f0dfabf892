package cache

import (
	"context"
	"fmt"

	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/window"
	json "github.com/goccy/go-json"
)

const windowsKey = "windows"

// LoadSnapshot returns the cached window list, or the sample set when the
// cache is unavailable, empty or unreadable.
func LoadSnapshot(ctx context.Context, s *Store) []window.Record {
	if s == nil {
		events.Cache.Load("defaults", len(window.Samples()))
		return window.Samples()
	}
	raw, ok, err := s.Get(ctx, windowsKey)
	if err != nil {
		logging.Error(fmt.Errorf("load window cache: %w", err))
		return window.Samples()
	}
	if !ok {
		events.Cache.Load("defaults", len(window.Samples()))
		return window.Samples()
	}
	records, err := DecodeRecords(raw)
	if err != nil {
		logging.Error(fmt.Errorf("decode window cache: %w", err))
		return window.Samples()
	}
	events.Cache.Load("cache", len(records))
	return records
}

// SaveSnapshot writes records to the cache slot.
func (s *Store) SaveSnapshot(ctx context.Context, records []window.Record) error {
	raw, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	if err := s.Put(ctx, windowsKey, raw); err != nil {
		return err
	}
	events.Cache.Save(len(records))
	return nil
}

// EncodeRecords serialises records for storage.
func EncodeRecords(records []window.Record) ([]byte, error) {
	if records == nil {
		records = []window.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return raw, nil
}

// DecodeRecords parses a stored snapshot. Records without an id are rejected.
func DecodeRecords(raw []byte) ([]window.Record, error) {
	var records []window.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("decode records: entry %d has no id", i)
		}
	}
	if records == nil {
		records = []window.Record{}
	}
	return records, nil
}
