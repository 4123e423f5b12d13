package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// ErrInvalidShape is returned when a JSON document's top level is not
// an object of date keys.
var ErrInvalidShape = errors.New("json must be an object of { date: events[] }")

// EncodeStoreJSON serializes the whole store as the date -> event-list
// mapping, indented the way the export file has always been written.
func EncodeStoreJSON(store model.EventStore) ([]byte, error) {
	return json.MarshalIndent(store, "", "  ")
}

// DecodeStoreJSON parses an exported store. Ids are preserved, which is
// what makes identity-based dedup possible on re-import. Date entries
// that are not event arrays are skipped with a log line.
func DecodeStoreJSON(data []byte) (model.EventStore, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidShape
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, ErrInvalidShape
	}

	store := make(model.EventStore, len(raw))
	for date, msg := range raw {
		var bucket model.DayBucket
		if err := json.Unmarshal(msg, &bucket); err != nil {
			log.Printf("json import: skipping malformed entry for %s: %v", date, err)
			continue
		}
		store[date] = bucket
	}
	return store, nil
}
