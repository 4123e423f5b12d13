package journal

import (
	"context"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

type mockSyncer struct {
	remoteEvents  model.EventStore
	remoteMetrics model.MetricsStore

	pushedEvents  model.EventStore
	pushedMetrics model.MetricsStore

	fetchErr error
	pushErr  error
}

func (m *mockSyncer) FetchEvents(ctx context.Context) (model.EventStore, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.remoteEvents, nil
}

func (m *mockSyncer) FetchMetrics(ctx context.Context) (model.MetricsStore, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.remoteMetrics, nil
}

func (m *mockSyncer) PushEvents(ctx context.Context, store model.EventStore) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.pushedEvents = store
	return nil
}

func (m *mockSyncer) PushMetrics(ctx context.Context, metrics model.MetricsStore) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.pushedMetrics = metrics
	return nil
}
