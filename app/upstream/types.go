package upstream

import (
	"time"

	"github.com/veggiedefender/simple-sharples/app/menu"
)

// SubFeed is one keyed sub-result of the fused query response.
type SubFeed struct {
	Data []menu.RawMeal `json:"data"`
}

// FeedResponse is the decoded fused query response. Sub-feeds are pointers so
// a missing key can be told apart from an empty one.
type FeedResponse struct {
	Today    *SubFeed `json:"today"`
	Upcoming *SubFeed `json:"upcoming"`
	Essies   *SubFeed `json:"essies"`
}

// QueryBounds are the time bounds of one menu request. All three derive from
// a single "now" instant so a request can never straddle a day boundary.
type QueryBounds struct {
	TodayStart  time.Time
	TodayEnd    time.Time
	UpcomingEnd time.Time
}

// BoundsFor computes query bounds anchored at now: today's midnight-to-midnight
// range plus an upcoming window ending after lookaheadDays more days.
func BoundsFor(now time.Time, lookaheadDays int) QueryBounds {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	return QueryBounds{
		TodayStart:  start,
		TodayEnd:    start.AddDate(0, 0, 1),
		UpcomingEnd: start.AddDate(0, 0, lookaheadDays+1),
	}
}
