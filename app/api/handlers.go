package api

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/veggiedefender/simple-sharples/app/cfg"
	"github.com/veggiedefender/simple-sharples/app/menu"
	"github.com/veggiedefender/simple-sharples/app/upstream"
)

// MenuFetcher is the upstream feed collaborator.
type MenuFetcher interface {
	FetchMenu(ctx context.Context, bounds upstream.QueryBounds) (*upstream.FeedResponse, error)
}

type Handler struct {
	fetcher       MenuFetcher
	aggregator    *menu.Aggregator
	clock         clockwork.Clock
	loc           *time.Location
	lookaheadDays int
	tpl           *template.Template
}

func NewHandler(fetcher MenuFetcher, aggregator *menu.Aggregator, clock clockwork.Clock,
	loc *time.Location, lookaheadDays int, tpl *template.Template) *Handler {
	return &Handler{
		fetcher:       fetcher,
		aggregator:    aggregator,
		clock:         clock,
		loc:           loc,
		lookaheadDays: lookaheadDays,
		tpl:           tpl,
	}
}

// GetMenu fetches the fused feed, runs the normalization pipeline over each
// sub-feed and renders the menu page. Any failure aborts with a gin error and
// is turned into the fallback page by the error boundary.
func (h *Handler) GetMenu(c *gin.Context) {
	// Read the clock exactly once: every bound and label of this request
	// derives from the same instant.
	now := h.clock.Now().In(h.loc)
	bounds := upstream.BoundsFor(now, h.lookaheadDays)

	feed, err := h.fetcher.FetchMenu(c.Request.Context(), bounds)
	if err != nil {
		c.Error(fmt.Errorf("upstream fetch: %w", err))
		c.Abort()
		return
	}

	today, err := h.aggregator.FilterMeals(feed.Today.Data)
	if err != nil {
		c.Error(fmt.Errorf("today sub-feed: %w", err))
		c.Abort()
		return
	}

	upcomingMeals, err := h.aggregator.FilterMeals(feed.Upcoming.Data)
	if err != nil {
		c.Error(fmt.Errorf("upcoming sub-feed: %w", err))
		c.Abort()
		return
	}

	special, hasSpecial := h.aggregator.ExtractSpecial(feed.Essies.Data)

	var buf bytes.Buffer
	err = h.tpl.ExecuteTemplate(&buf, "menu.html", gin.H{
		"Date":       now.Format("Monday, January 2"),
		"Today":      today,
		"Upcoming":   h.aggregator.GroupByDay(upcomingMeals),
		"Special":    special,
		"HasSpecial": hasSpecial,
	})
	if err != nil {
		c.Error(fmt.Errorf("render menu: %w", err))
		c.Abort()
		return
	}

	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// GetHealth reports basic service status. Not routed through the page cache.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":      h.clock.Now().In(h.loc).Format(time.RFC3339),
		"timezone":       h.loc.String(),
		"lookahead_days": h.lookaheadDays,
		"version":        cfg.GetVersion(),
	})
}
