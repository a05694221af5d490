package config

// Source describes the upstream calendar feed the menu is built from.
type Source struct {
	Name      string    `yaml:"name"`
	URL       string    `yaml:"url"`
	Calendars Calendars `yaml:"calendars"`
	Settings  Settings  `yaml:"settings"`
}

// Calendars maps the logical sub-feeds to upstream calendar identifiers.
type Calendars struct {
	Menu    string `yaml:"menu"`
	Special string `yaml:"special"`
}

type Settings struct {
	// Format selects the item-splitting strategy for meal descriptions:
	// "tags" for the current feed (<br>/<li> delimited) or "semicolon"
	// for the legacy feed variant.
	Format  string `yaml:"format"`
	Timeout int    `yaml:"timeout"` // seconds
}

const (
	FormatTags      = "tags"
	FormatSemicolon = "semicolon"
)
