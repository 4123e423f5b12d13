package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Len(t, cfg.Catalog.Categories, 23)
	assert.Len(t, cfg.Catalog.Purposes, 3)
	assert.Equal(t, "work", cfg.Catalog.Categories[0].ID)
	assert.Equal(t, "8080", cfg.Server.Port)

	// Keyword tables may reference ids outside the catalog ("sleep");
	// the aggregator counts them regardless.
	ids := make(map[string]bool)
	for _, g := range cfg.Keywords.Categories {
		ids[g.ID] = true
	}
	assert.True(t, ids["sleep"])
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = "9090"

[store]
uri = "bolt://localhost:7687"

[[keywords.categories]]
id = "exercise"
match = ["swim"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Store.URI)
	// A keywords section replaces the built-in table wholesale.
	require.Len(t, cfg.Keywords.Categories, 1)
	assert.Equal(t, []string{"swim"}, cfg.Keywords.Categories[0].Match)
	// Untouched sections keep their defaults.
	assert.Len(t, cfg.Catalog.Categories, 23)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does/not/exist.toml")
	assert.Error(t, err)
}
