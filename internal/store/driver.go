// Package store owns durable persistence for the event store and the
// derived metrics cache. Both are saved whole; the store is the single
// source of truth and metrics are always recomputable from it.
package store

import (
	"context"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// Driver is the persistence collaborator. Load failures are expected to
// be degraded to an empty store by the caller, never propagated to the
// user.
type Driver interface {
	LoadEvents(ctx context.Context) (model.EventStore, error)
	SaveEvents(ctx context.Context, store model.EventStore) error
	LoadMetrics(ctx context.Context) (model.MetricsStore, error)
	SaveMetrics(ctx context.Context, metrics model.MetricsStore) error
	EnsureSchema(ctx context.Context) error
	Close(ctx context.Context) error
}
