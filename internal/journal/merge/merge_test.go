package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

func TestMerge_ByID(t *testing.T) {
	existing := model.EventStore{
		"2024-01-01": {{ID: "a", Hour: 7, Note: "breakfast"}},
	}
	incoming := model.EventStore{
		"2024-01-01": {
			{ID: "a", Hour: 9, Note: "totally different content"}, // same id, still a dupe
			{ID: "b", Hour: 7, Note: "breakfast"},                 // same content, new id
		},
	}

	merged, added := Merge(existing, incoming, ByID{})

	assert.Equal(t, 1, added)
	require.Len(t, merged["2024-01-01"], 2)
	assert.Equal(t, "a", merged["2024-01-01"][0].ID)
	assert.Equal(t, "b", merged["2024-01-01"][1].ID)
}

func TestMerge_ByContent(t *testing.T) {
	existing := model.EventStore{
		"2024-01-01": {{ID: "a", Hour: 7, Note: "breakfast"}},
	}
	incoming := model.EventStore{
		"2024-01-01": {
			{ID: "fresh-1", Hour: 7, Note: "breakfast"}, // dupe despite fresh id
			{ID: "fresh-2", Hour: 8, Note: "breakfast"}, // different hour, kept
		},
	}

	merged, added := Merge(existing, incoming, ByContent{})

	assert.Equal(t, 1, added)
	require.Len(t, merged["2024-01-01"], 2)
	assert.Equal(t, "fresh-2", merged["2024-01-01"][1].ID)
}

func TestMerge_Reimport_AddsNothing(t *testing.T) {
	batch := model.EventStore{
		"2024-01-01": {
			{ID: "x1", Hour: 7, Note: "breakfast"},
			{ID: "x2", Hour: 9, Note: "deep work"},
		},
	}

	once, added := Merge(model.EventStore{}, batch, ByContent{})
	assert.Equal(t, 2, added)

	// Same content with fresh ids, as a re-parse would produce.
	again := model.EventStore{
		"2024-01-01": {
			{ID: "y1", Hour: 7, Note: "breakfast"},
			{ID: "y2", Hour: 9, Note: "deep work"},
		},
	}
	twice, added := Merge(once, again, ByContent{})
	assert.Zero(t, added)
	assert.Equal(t, once, twice)
}

func TestMerge_NonDestructive(t *testing.T) {
	existing := model.EventStore{
		"2024-01-01": {{ID: "a", Hour: 7, Note: "breakfast", Rating: 3}},
	}
	incoming := model.EventStore{
		"2024-01-01": {{ID: "b", Hour: 8, Note: "commute"}},
		"2024-01-02": {{ID: "c", Hour: 7, Note: "breakfast"}},
	}

	merged, added := Merge(existing, incoming, ByContent{})
	assert.Equal(t, 2, added)

	// The input store is untouched: new day absent, old day unchanged.
	assert.Len(t, existing, 1)
	assert.Len(t, existing["2024-01-01"], 1)
	// Existing events come first, additions append at the end.
	assert.Equal(t, "a", merged["2024-01-01"][0].ID)
	assert.Equal(t, "b", merged["2024-01-01"][1].ID)
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "id", ByID{}.Name())
	assert.Equal(t, "content", ByContent{}.Name())
}
