package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// KeywordGroup maps one tag id to the keywords that trigger it in note
// text. Order of groups controls the order tags are appended in.
type KeywordGroup struct {
	ID    string   `toml:"id"`
	Match []string `toml:"match"`
}

type KeywordTables struct {
	Categories []KeywordGroup `toml:"categories"`
	Purposes   []KeywordGroup `toml:"purposes"`
}

type StoreConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type SheetsConfig struct {
	URL    string `toml:"url"`
	Secret string `toml:"secret"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	Server   ServerConfig  `toml:"server"`
	Store    StoreConfig   `toml:"store"`
	Sheets   SheetsConfig  `toml:"sheets"`
	Catalog  model.Catalog `toml:"catalog"`
	Keywords KeywordTables `toml:"keywords"`
}

// Load reads a TOML file over the built-in defaults. Sections present
// in the file replace their default wholesale; absent sections keep the
// default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var fileCfg Config
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg := Default()
	if fileCfg.Server.Port != "" {
		cfg.Server = fileCfg.Server
	}
	if fileCfg.Store != (StoreConfig{}) {
		cfg.Store = fileCfg.Store
	}
	if fileCfg.Sheets != (SheetsConfig{}) {
		cfg.Sheets = fileCfg.Sheets
	}
	if len(fileCfg.Catalog.Categories) > 0 || len(fileCfg.Catalog.Purposes) > 0 {
		cfg.Catalog = fileCfg.Catalog
	}
	if len(fileCfg.Keywords.Categories) > 0 || len(fileCfg.Keywords.Purposes) > 0 {
		cfg.Keywords = fileCfg.Keywords
	}
	return cfg, nil
}

// Default returns the built-in catalog and keyword tables. A TOML file
// overrides whole sections, not individual entries.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Catalog: model.Catalog{
			Categories: []model.CatalogEntry{
				{ID: "work", Name: "Work", Icon: "💼"},
				{ID: "learn", Name: "Learn", Icon: "📚"},
				{ID: "play", Name: "Play", Icon: "🎉"},
				{ID: "family", Name: "Family", Icon: "👨‍👩‍👧"},
				{ID: "grateful", Name: "Grateful", Icon: "🙏"},
				{ID: "ego", Name: "Ego/Improve", Icon: "🪞"},
				{ID: "connect", Name: "Connect/Value", Icon: "🤝"},
				{ID: "exercise", Name: "Exercise", Icon: "🏃‍♂️"},
				{ID: "errand", Name: "Errand", Icon: "🛒"},
				{ID: "create", Name: "Create", Icon: "🎨"},
				{ID: "career", Name: "Career", Icon: "🎯"},
				{ID: "class", Name: "Class", Icon: "🏫"},
				{ID: "kids", Name: "Kids", Icon: "👶"},
				{ID: "bow", Name: "Bow", Icon: "👩‍❤️‍💋‍👨"},
				{ID: "parent", Name: "Parents", Icon: "👫"},
				{ID: "friend", Name: "Friend", Icon: "🧑‍🤝‍🧑"},
				{ID: "volunteer", Name: "Volunteer", Icon: "⚜️"},
				{ID: "commute", Name: "Commute", Icon: "🚐"},
				{ID: "mindful", Name: "Mindful", Icon: "🧘"},
				{ID: "meal", Name: "Meal", Icon: "🍽️"},
				{ID: "media", Name: "Media", Icon: "📺"},
				{ID: "money", Name: "Money", Icon: "💰"},
				{ID: "read", Name: "Read", Icon: "📖"},
			},
			Purposes: []model.CatalogEntry{
				{ID: "meaning", Name: "Meaning", Icon: "🌱"},
				{ID: "happy", Name: "Happy", Icon: "😊"},
				{ID: "adventure", Name: "Adventure", Icon: "🚀"},
			},
		},
		Keywords: KeywordTables{
			Categories: []KeywordGroup{
				{ID: "learn", Match: []string{"learn", "class"}},
				{ID: "work", Match: []string{"work"}},
				{ID: "exercise", Match: []string{"run", "bike", "gym"}},
				{ID: "mindful", Match: []string{"meditation", "stretch", "chill", "nap"}},
				{ID: "ego", Match: []string{"ego"}},
				{ID: "grateful", Match: []string{"grateful"}},
				{ID: "errand", Match: []string{"errand"}},
				{ID: "create", Match: []string{"create"}},
				{ID: "career", Match: []string{"career", "job"}},
				{ID: "family", Match: []string{"family"}},
				{ID: "kids", Match: []string{"kids", "nana", "casper", "ray"}},
				{ID: "bow", Match: []string{"bow"}},
				{ID: "parent", Match: []string{"parent"}},
				{ID: "friend", Match: []string{"friend"}},
				{ID: "volunteer", Match: []string{"volunteer", "scout"}},
				{ID: "commute", Match: []string{"drive", "commute"}},
				{ID: "read", Match: []string{"library", "read"}},
				{ID: "media", Match: []string{"tv", "phone"}},
				{ID: "money", Match: []string{"money", "bookkeep"}},
				{ID: "meal", Match: []string{"lunch", "breakfast", "dinner"}},
				{ID: "sleep", Match: []string{"woke", "sleep"}},
			},
			Purposes: []KeywordGroup{
				{ID: "meaning", Match: []string{"grateful"}},
				{ID: "happy", Match: []string{"happy"}},
				{ID: "adventure", Match: []string{"adventure"}},
			},
		},
	}
}
