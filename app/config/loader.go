package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the feed source configuration
type Loader struct {
	path string
}

// NewLoader creates a new configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the source configuration file. A missing file is not an error:
// the built-in default source is returned instead.
func (l *Loader) Load() (*Source, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		return DefaultSource(), nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&source)

	if err := l.validate(&source); err != nil {
		return nil, fmt.Errorf("invalid source config %s: %w", l.path, err)
	}

	return &source, nil
}

// DefaultSource returns the built-in Sharples source configuration.
func DefaultSource() *Source {
	return &Source{
		Name: "sharples",
		URL:  "https://dash.swarthmore.edu/dining",
		Calendars: Calendars{
			Menu:    "sharples",
			Special: "essies",
		},
		Settings: Settings{
			Format:  FormatTags,
			Timeout: 10,
		},
	}
}

// setDefaults applies default values to configuration
func (l *Loader) setDefaults(source *Source) {
	if source.Name == "" {
		source.Name = "sharples"
	}
	if source.Calendars.Menu == "" {
		source.Calendars.Menu = "sharples"
	}
	if source.Calendars.Special == "" {
		source.Calendars.Special = "essies"
	}
	if source.Settings.Format == "" {
		source.Settings.Format = FormatTags
	}
	if source.Settings.Timeout == 0 {
		source.Settings.Timeout = 10 // seconds
	}
}

// validate checks required fields and enum values
func (l *Loader) validate(source *Source) error {
	if source.URL == "" {
		return fmt.Errorf("missing feed URL")
	}

	switch source.Settings.Format {
	case FormatTags, FormatSemicolon:
	default:
		return fmt.Errorf("unknown description format %q", source.Settings.Format)
	}

	return nil
}
