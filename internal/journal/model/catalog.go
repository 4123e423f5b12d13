package model

// CatalogEntry is one category or purpose in the fixed taxonomy.
// The catalog is static configuration, read-only at runtime.
type CatalogEntry struct {
	ID   string `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`
	Icon string `json:"icon" toml:"icon"`
}

// Catalog is the ordered category and purpose taxonomy. Order matters
// for display and for the metrics CSV column layout.
type Catalog struct {
	Categories []CatalogEntry `json:"categories" toml:"categories"`
	Purposes   []CatalogEntry `json:"purposes" toml:"purposes"`
}

// CategoryIDs returns the category ids in catalog order.
func (c Catalog) CategoryIDs() []string {
	ids := make([]string, len(c.Categories))
	for i, e := range c.Categories {
		ids[i] = e.ID
	}
	return ids
}

func (c Catalog) PurposeIDs() []string {
	ids := make([]string, len(c.Purposes))
	for i, e := range c.Purposes {
		ids[i] = e.ID
	}
	return ids
}
