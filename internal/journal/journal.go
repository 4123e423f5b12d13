// Package journal wires the parser, codecs, merge engine, and metrics
// aggregator over a persistence driver and an optional remote sheet
// sync. The core packages underneath are pure; this is the boundary
// layer that owns the optimistic-update discipline and serializes
// mutations.
package journal

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/chrisissin/moodmap-journal/internal/config"
	"github.com/chrisissin/moodmap-journal/internal/journal/codec"
	"github.com/chrisissin/moodmap-journal/internal/journal/logparse"
	"github.com/chrisissin/moodmap-journal/internal/journal/merge"
	"github.com/chrisissin/moodmap-journal/internal/journal/metrics"
	"github.com/chrisissin/moodmap-journal/internal/journal/model"
	"github.com/chrisissin/moodmap-journal/internal/store"
)

// Syncer is the remote sheet collaborator. All calls are best-effort.
type Syncer interface {
	FetchEvents(ctx context.Context) (model.EventStore, error)
	FetchMetrics(ctx context.Context) (model.MetricsStore, error)
	PushEvents(ctx context.Context, store model.EventStore) error
	PushMetrics(ctx context.Context, metrics model.MetricsStore) error
}

// ImportResult reports what an import did. SyncWarning carries a failed
// remote push; the local update has already happened when it is set.
type ImportResult struct {
	Added       int    `json:"added"`
	Skipped     int    `json:"skipped,omitempty"`
	SyncWarning string `json:"syncWarning,omitempty"`
}

type Journal struct {
	Driver  store.Driver
	Sync    Syncer // nil when no sheet is configured
	Parser  *logparse.Parser
	Tagger  *logparse.Tagger
	Catalog model.Catalog

	// IDGenerator mints event ids. Overridable for deterministic tests.
	IDGenerator func() string

	mu sync.Mutex // one mutation in flight at a time
}

func New(driver store.Driver, syncer Syncer, cfg *config.Config) *Journal {
	j := &Journal{
		Driver:      driver,
		Sync:        syncer,
		Tagger:      logparse.NewTagger(cfg.Keywords),
		Catalog:     cfg.Catalog,
		IDGenerator: uuid.NewString,
	}
	j.Parser = logparse.NewParser(j.Tagger, func() string { return j.IDGenerator() })
	return j
}

// loadEvents degrades a failed load to an empty store. Persistence
// trouble must never make the journal unusable.
func (j *Journal) loadEvents(ctx context.Context) model.EventStore {
	events, err := j.Driver.LoadEvents(ctx)
	if err != nil {
		log.Printf("Warning: failed to load events, starting empty: %v", err)
		return make(model.EventStore)
	}
	return events
}

// persist recomputes metrics from the merged store, writes both locally,
// then pushes to the sheet. A failed push is returned as a warning
// string; local state is already committed and stays.
func (j *Journal) persist(ctx context.Context, events model.EventStore) (string, error) {
	m := metrics.ComputeAll(events)
	if err := j.Driver.SaveEvents(ctx, events); err != nil {
		return "", fmt.Errorf("failed to save events: %w", err)
	}
	if err := j.Driver.SaveMetrics(ctx, m); err != nil {
		return "", fmt.Errorf("failed to save metrics: %w", err)
	}

	if j.Sync == nil {
		return "", nil
	}
	if err := j.Sync.PushEvents(ctx, events); err != nil {
		log.Printf("Failed to push events to sheet: %v", err)
		return err.Error(), nil
	}
	if err := j.Sync.PushMetrics(ctx, m); err != nil {
		log.Printf("Failed to push metrics to sheet: %v", err)
		return err.Error(), nil
	}
	return "", nil
}

// ImportText parses the diary log format and merges the result with
// content-based dedup, so pasting the same log twice adds nothing.
func (j *Journal) ImportText(ctx context.Context, text string) (ImportResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	parsed, err := j.Parser.Parse(text)
	if err != nil {
		return ImportResult{}, err
	}

	merged, added := merge.Merge(j.loadEvents(ctx), parsed, merge.ByContent{})
	warn, err := j.persist(ctx, merged)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Added: added, SyncWarning: warn}, nil
}

// ImportCSV decodes an events CSV and merges with content-based dedup.
func (j *Journal) ImportCSV(ctx context.Context, data []byte) (ImportResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	parsed, skipped, err := codec.DecodeEventsCSV(string(data), j.IDGenerator)
	if err != nil {
		return ImportResult{}, err
	}

	merged, added := merge.Merge(j.loadEvents(ctx), parsed, merge.ByContent{})
	warn, err := j.persist(ctx, merged)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Added: added, Skipped: skipped, SyncWarning: warn}, nil
}

// ImportJSON decodes an exported store and merges with identity-based
// dedup, since ids survive the export/import round trip.
func (j *Journal) ImportJSON(ctx context.Context, data []byte) (ImportResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	parsed, err := codec.DecodeStoreJSON(data)
	if err != nil {
		return ImportResult{}, err
	}

	merged, added := merge.Merge(j.loadEvents(ctx), parsed, merge.ByID{})
	warn, err := j.persist(ctx, merged)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Added: added, SyncWarning: warn}, nil
}

// Day returns the (possibly empty) bucket for one date.
func (j *Journal) Day(ctx context.Context, date string) model.DayBucket {
	bucket := j.loadEvents(ctx)[date]
	if bucket == nil {
		bucket = model.DayBucket{}
	}
	return bucket
}

// UpsertEvent inserts or replaces one event in a day bucket. An event
// without an id gets a fresh one and is appended; an event with an id
// replaces its predecessor in place.
func (j *Journal) UpsertEvent(ctx context.Context, date string, ev model.Event) (model.Event, error) {
	if err := ev.Validate(); err != nil {
		return model.Event{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	events := j.loadEvents(ctx)
	bucket := events[date]

	if ev.ID == "" {
		ev.ID = j.IDGenerator()
		bucket = append(bucket, ev)
	} else {
		replaced := false
		for i, existing := range bucket {
			if existing.ID == ev.ID {
				bucket[i] = ev
				replaced = true
				break
			}
		}
		if !replaced {
			bucket = append(bucket, ev)
		}
	}
	events[date] = bucket

	if _, err := j.persist(ctx, events); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

func (j *Journal) DeleteEvent(ctx context.Context, date, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	events := j.loadEvents(ctx)
	bucket := events[date]
	kept := make(model.DayBucket, 0, len(bucket))
	for _, ev := range bucket {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	events[date] = kept

	_, err := j.persist(ctx, events)
	return err
}

// Dashboard aggregates the inclusive date range straight from events.
func (j *Journal) Dashboard(ctx context.Context, start, end string) (model.RangeSummary, error) {
	return metrics.Range(j.loadEvents(ctx), start, end)
}

func (j *Journal) ExportJSON(ctx context.Context) ([]byte, error) {
	return codec.EncodeStoreJSON(j.loadEvents(ctx))
}

func (j *Journal) ExportEventsCSV(ctx context.Context) string {
	return codec.EncodeEventsCSV(j.loadEvents(ctx))
}

// ExportMetricsCSV exports the stored metrics, which include any manual
// cell overrides. When the metrics store is unreadable it falls back to
// recomputing from events.
func (j *Journal) ExportMetricsCSV(ctx context.Context) string {
	m, err := j.Driver.LoadMetrics(ctx)
	if err != nil {
		log.Printf("Warning: failed to load metrics, recomputing: %v", err)
		m = metrics.ComputeAll(j.loadEvents(ctx))
	}
	return codec.EncodeMetricsCSV(m, j.Catalog.CategoryIDs())
}

// OverrideMetricCell sets one category count for one date directly in
// the derived metrics store. The override lives until the next event
// mutation recomputes metrics from scratch.
func (j *Journal) OverrideMetricCell(ctx context.Context, date, category string, count int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	m, err := j.Driver.LoadMetrics(ctx)
	if err != nil {
		log.Printf("Warning: failed to load metrics, starting empty: %v", err)
		m = make(model.MetricsStore)
	}

	dm, ok := m[date]
	if !ok {
		dm = model.DayMetrics{CatCounts: make(map[string]int)}
	}
	if dm.CatCounts == nil {
		dm.CatCounts = make(map[string]int)
	}
	dm.CatCounts[category] = count
	m[date] = dm

	if err := j.Driver.SaveMetrics(ctx, m); err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	if j.Sync != nil {
		if err := j.Sync.PushMetrics(ctx, m); err != nil {
			log.Printf("Failed to push metrics to sheet: %v", err)
		}
	}
	return nil
}

// PushAll pushes the local events and metrics to the sheet.
func (j *Journal) PushAll(ctx context.Context) error {
	if j.Sync == nil {
		return fmt.Errorf("no sheet configured")
	}
	events := j.loadEvents(ctx)
	if err := j.Sync.PushEvents(ctx, events); err != nil {
		return err
	}
	m, err := j.Driver.LoadMetrics(ctx)
	if err != nil {
		m = metrics.ComputeAll(events)
	}
	return j.Sync.PushMetrics(ctx, m)
}

// PullAll replaces local state with the sheet's. Last writer wins, no
// conflict detection.
func (j *Journal) PullAll(ctx context.Context) error {
	if j.Sync == nil {
		return fmt.Errorf("no sheet configured")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	events, err := j.Sync.FetchEvents(ctx)
	if err != nil {
		return err
	}
	m, err := j.Sync.FetchMetrics(ctx)
	if err != nil {
		return err
	}

	if err := j.Driver.SaveEvents(ctx, events); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	if err := j.Driver.SaveMetrics(ctx, m); err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	return nil
}
