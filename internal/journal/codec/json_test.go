package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

func TestStoreJSON_RoundTrip(t *testing.T) {
	store := model.EventStore{
		"2024-01-01": {
			{ID: "a1", Hour: 7, Note: "breakfast", Rating: 3,
				Categories: []string{"meal"}, Purposes: []string{}},
			{ID: "a2", Hour: 18, Note: "run in the park", Rating: 5,
				Categories: []string{"exercise"}, Purposes: []string{"happy"},
				Context: model.Context{Weather: "clear", Movement: "running"}},
		},
		"2024-01-03": {},
	}

	data, err := EncodeStoreJSON(store)
	require.NoError(t, err)

	decoded, err := DecodeStoreJSON(data)
	require.NoError(t, err)
	assert.Equal(t, store, decoded)
}

func TestDecodeStoreJSON_InvalidShape(t *testing.T) {
	for _, bad := range []string{`[1,2,3]`, `"text"`, `42`, ``, `null`} {
		_, err := DecodeStoreJSON([]byte(bad))
		assert.ErrorIs(t, err, ErrInvalidShape, "input %q", bad)
	}
}

func TestDecodeStoreJSON_SkipsMalformedEntries(t *testing.T) {
	data := []byte(`{
		"2024-01-01": [{"id":"a","hour":7,"note":"ok","rating":3,"categories":[],"purposes":[],"context":{}}],
		"2024-01-02": "not an array"
	}`)

	store, err := DecodeStoreJSON(data)
	require.NoError(t, err)

	assert.Len(t, store, 1)
	require.Len(t, store["2024-01-01"], 1)
	assert.Equal(t, "a", store["2024-01-01"][0].ID)
}

func TestDecodeStoreJSON_PreservesIDs(t *testing.T) {
	store, err := DecodeStoreJSON([]byte(`{"2024-01-01":[{"id":"keep-me","hour":1,"note":"n","rating":2}]}`))
	require.NoError(t, err)
	assert.Equal(t, "keep-me", store["2024-01-01"][0].ID)
}
