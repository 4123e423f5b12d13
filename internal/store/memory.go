package store

import (
	"context"
	"sync"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// MemoryDriver keeps everything in process. It backs the server when no
// store URI is configured and doubles as the test driver. Loads and saves
// may arrive from concurrent request handlers, so the stores are guarded.
type MemoryDriver struct {
	mu      sync.RWMutex
	Events  model.EventStore
	Metrics model.MetricsStore

	// Optional failure injection for tests.
	LoadErr error
	SaveErr error
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{
		Events:  make(model.EventStore),
		Metrics: make(model.MetricsStore),
	}
}

func (d *MemoryDriver) LoadEvents(ctx context.Context) (model.EventStore, error) {
	if d.LoadErr != nil {
		return nil, d.LoadErr
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Events.Clone(), nil
}

func (d *MemoryDriver) SaveEvents(ctx context.Context, store model.EventStore) error {
	if d.SaveErr != nil {
		return d.SaveErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Events = store.Clone()
	return nil
}

func (d *MemoryDriver) LoadMetrics(ctx context.Context) (model.MetricsStore, error) {
	if d.LoadErr != nil {
		return nil, d.LoadErr
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Metrics.Clone(), nil
}

func (d *MemoryDriver) SaveMetrics(ctx context.Context, metrics model.MetricsStore) error {
	if d.SaveErr != nil {
		return d.SaveErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Metrics = metrics.Clone()
	return nil
}

func (d *MemoryDriver) EnsureSchema(ctx context.Context) error { return nil }

func (d *MemoryDriver) Close(ctx context.Context) error { return nil }
