//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisissin/moodmap-journal/internal/config"
	"github.com/chrisissin/moodmap-journal/internal/journal"
	"github.com/chrisissin/moodmap-journal/internal/store"
)

// TestFullFlow round-trips the whole pipeline against a real bolt
// store: text import, persistence, re-import dedup, dashboard, export.
func TestFullFlow(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("STORE_URI")
	if uri == "" {
		t.Skip("Skipping integration test: STORE_URI not set")
	}

	d, err := store.NewBoltDriver(uri, os.Getenv("STORE_USER"), os.Getenv("STORE_PASSWORD"))
	require.NoError(t, err)
	defer d.Close(context.Background())

	ctx := context.Background()
	require.NoError(t, d.EnsureSchema(ctx))

	// Clean slate so additions are observable.
	require.NoError(t, d.SaveEvents(ctx, nil))
	require.NoError(t, d.SaveMetrics(ctx, nil))

	j := journal.New(d, nil, config.Default())

	log := "12/25/2023\n8\nbreakfast with family\n12\nnap\n1\nerrand run +"
	result, err := j.ImportText(ctx, log)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Added)

	// Events landed in the store.
	events, err := d.LoadEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events["2023-12-25"], 3)

	// Second import of the same text is a no-op.
	again, err := j.ImportText(ctx, log)
	require.NoError(t, err)
	assert.Zero(t, again.Added)

	// Metrics were derived and persisted.
	metrics, err := d.LoadMetrics(ctx)
	require.NoError(t, err)
	assert.Contains(t, metrics, "2023-12-25")

	// Export/import JSON round trip adds nothing.
	exported, err := j.ExportJSON(ctx)
	require.NoError(t, err)
	jsonResult, err := j.ImportJSON(ctx, exported)
	require.NoError(t, err)
	assert.Zero(t, jsonResult.Added)

	summary, err := j.Dashboard(ctx, "2023-12-25", "2023-12-25")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CategoryTotals["errand"])
	require.Len(t, summary.Timeline, 1)
	require.NotNil(t, summary.Timeline[0].AvgRating)
}
