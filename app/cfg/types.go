package cfg

import "time"

type Cfg struct {
	// Application configuration
	Port          string
	SourceFile    string
	LookaheadDays int

	// Cache configuration
	CacheAddr string
	CacheTTL  int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string

	// Location is the resolved Timezone. All feed timestamps are interpreted
	// in this zone and every rendered date label is derived from it.
	Location *time.Location
}
