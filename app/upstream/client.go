package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// boundLayout is the timezone-naive ISO-8601 layout the fused query API
// expects for time bounds.
const boundLayout = "2006-01-02T15:04:05"

// subQuery is one keyed entry of the fused query payload.
type subQuery struct {
	Calendar string `json:"calendar"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// Client fetches the fused dining feed from the upstream calendar API.
type Client struct {
	baseURL         string
	menuCalendar    string
	specialCalendar string
	userAgent       string
	client          *http.Client
}

func NewClient(baseURL, menuCalendar, specialCalendar, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:         baseURL,
		menuCalendar:    menuCalendar,
		specialCalendar: specialCalendar,
		userAgent:       userAgent,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
	}
}

// FetchMenu issues the fused query for the given bounds and decodes the keyed
// sub-feeds. A missing sub-feed key is an error.
func (c *Client) FetchMenu(ctx context.Context, bounds QueryBounds) (*FeedResponse, error) {
	requestURL, err := c.buildURL(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	var feed FeedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed response: %w", err)
	}

	for name, sub := range map[string]*SubFeed{
		"today":    feed.Today,
		"upcoming": feed.Upcoming,
		"essies":   feed.Essies,
	} {
		if sub == nil {
			return nil, fmt.Errorf("feed response missing %q sub-feed", name)
		}
	}

	return &feed, nil
}

// buildURL assembles the fused query URL. The query is a keyed set of
// sub-queries, each bounded with timezone-naive ISO-8601 timestamps.
func (c *Client) buildURL(bounds QueryBounds) (string, error) {
	queries := map[string]subQuery{
		"today": {
			Calendar: c.menuCalendar,
			Start:    bounds.TodayStart.Format(boundLayout),
			End:      bounds.TodayEnd.Format(boundLayout),
		},
		"upcoming": {
			Calendar: c.menuCalendar,
			Start:    bounds.TodayEnd.Format(boundLayout),
			End:      bounds.UpcomingEnd.Format(boundLayout),
		},
		"essies": {
			Calendar: c.specialCalendar,
			Start:    bounds.TodayStart.Format(boundLayout),
			End:      bounds.TodayEnd.Format(boundLayout),
		},
	}

	payload, err := json.Marshal(queries)
	if err != nil {
		return "", err
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	params := base.Query()
	params.Set("fq", string(payload))
	base.RawQuery = params.Encode()

	return base.String(), nil
}
