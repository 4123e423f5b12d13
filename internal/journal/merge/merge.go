// Package merge combines imported event batches into an existing store
// without creating duplicates. Two dedup strategies coexist on purpose:
// JSON imports carry stable ids across an export/import round trip, so
// identity wins there; text and CSV imports mint fresh ids, so only the
// content can identify a duplicate. They are never unified.
package merge

import "github.com/chrisissin/moodmap-journal/internal/journal/model"

// Strategy decides whether an incoming event duplicates an existing one
// in the same day bucket.
type Strategy interface {
	Duplicate(existing, incoming model.Event) bool
	Name() string
}

// ByID treats equal ids as duplicates.
type ByID struct{}

func (ByID) Duplicate(existing, incoming model.Event) bool {
	return existing.ID == incoming.ID
}

func (ByID) Name() string { return "id" }

// ByContent treats equal hour plus exact note text as duplicates. Note
// comparison happens after the rating suffix has been stripped, which
// the parser guarantees.
type ByContent struct{}

func (ByContent) Duplicate(existing, incoming model.Event) bool {
	return existing.Hour == incoming.Hour && existing.Note == incoming.Note
}

func (ByContent) Name() string { return "content" }

// Merge appends every non-duplicate incoming event to a fresh copy of
// dst, preserving existing order and appending at the end of each day.
// Existing events are never modified or removed. Returns the new store
// and the number of events added.
func Merge(dst, incoming model.EventStore, strategy Strategy) (model.EventStore, int) {
	out := dst.Clone()
	added := 0
	for date, batch := range incoming {
		bucket := out[date]
		for _, ev := range batch {
			if containsDuplicate(bucket, ev, strategy) {
				continue
			}
			bucket = append(bucket, ev)
			added++
		}
		out[date] = bucket
	}
	return out, added
}

func containsDuplicate(bucket model.DayBucket, ev model.Event, strategy Strategy) bool {
	for _, existing := range bucket {
		if strategy.Duplicate(existing, ev) {
			return true
		}
	}
	return false
}
