package menu

import (
	"time"
)

// Recognized serving periods. Feed entries with any other title are not part
// of the menu proper and are dropped during aggregation.
const (
	PeriodBrunch = "Brunch"
	PeriodLunch  = "Lunch"
	PeriodDinner = "Dinner"
)

// RawMeal is one entry of the upstream feed, as delivered. Timestamps are
// timezone-naive ISO-8601 strings and the description may contain HTML
// markup and ::keyword:: dietary markers.
type RawMeal struct {
	Title       string `json:"title"`
	StartDate   string `json:"startdate"`
	EndDate     string `json:"enddate"`
	Description string `json:"description"`
}

// Meal is a normalized feed entry. Immutable after construction; Items
// contains only non-empty, markup-free, entity-decoded strings in feed order.
type Meal struct {
	Title     string
	Start     time.Time
	End       time.Time
	TimeLabel string // e.g. "11:05 to 2:00"
	DayLabel  string // e.g. "Mon 3/4"
	Items     []string
}

// Day holds up to one lunch-slot meal (Brunch or Lunch) and up to one Dinner,
// keyed by the short day label. A Day with neither slot set is never built.
type Day struct {
	Label  string
	Lunch  *Meal
	Dinner *Meal
}
