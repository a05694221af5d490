package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testBounds(t *testing.T) QueryBounds {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 3, 4, 15, 30, 0, 0, loc)
	return BoundsFor(now, 7)
}

func TestBoundsFor(t *testing.T) {
	bounds := testBounds(t)

	if got := bounds.TodayStart.Format("2006-01-02T15:04:05"); got != "2024-03-04T00:00:00" {
		t.Errorf("Expected today start at midnight, got %s", got)
	}
	if got := bounds.TodayEnd.Format("2006-01-02T15:04:05"); got != "2024-03-05T00:00:00" {
		t.Errorf("Expected today end at next midnight, got %s", got)
	}
	if got := bounds.UpcomingEnd.Format("2006-01-02T15:04:05"); got != "2024-03-12T00:00:00" {
		t.Errorf("Expected upcoming end 8 days out, got %s", got)
	}
}

func TestFetchMenu(t *testing.T) {
	var capturedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.Query().Get("fq")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"today": {"data": [{"title": "Lunch", "startdate": "2024-03-04T11:05:00", "enddate": "2024-03-04T14:00:00", "description": "Soup"}]},
			"upcoming": {"data": []},
			"essies": {"data": [{"title": "Essie's", "startdate": "2024-03-04T09:00:00", "enddate": "2024-03-04T21:00:00", "description": "<b>Special</b>: Grilled Cheese"}]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sharples", "essies", "Test Agent", 5*time.Second)

	feed, err := client.FetchMenu(context.Background(), testBounds(t))
	if err != nil {
		t.Fatal(err)
	}

	if len(feed.Today.Data) != 1 {
		t.Errorf("Expected 1 today record, got %d", len(feed.Today.Data))
	}
	if feed.Today.Data[0].Title != "Lunch" {
		t.Errorf("Expected title 'Lunch', got '%s'", feed.Today.Data[0].Title)
	}
	if len(feed.Upcoming.Data) != 0 {
		t.Errorf("Expected empty upcoming records, got %d", len(feed.Upcoming.Data))
	}

	var queries map[string]subQuery
	if err := json.Unmarshal([]byte(capturedQuery), &queries); err != nil {
		t.Fatalf("Fused query is not valid JSON: %v", err)
	}

	today, ok := queries["today"]
	if !ok {
		t.Fatal("Fused query missing 'today' sub-query")
	}
	if today.Calendar != "sharples" {
		t.Errorf("Expected today calendar 'sharples', got '%s'", today.Calendar)
	}
	if today.Start != "2024-03-04T00:00:00" || today.End != "2024-03-05T00:00:00" {
		t.Errorf("Unexpected today bounds: %s to %s", today.Start, today.End)
	}

	upcoming, ok := queries["upcoming"]
	if !ok {
		t.Fatal("Fused query missing 'upcoming' sub-query")
	}
	if upcoming.Start != "2024-03-05T00:00:00" || upcoming.End != "2024-03-12T00:00:00" {
		t.Errorf("Unexpected upcoming bounds: %s to %s", upcoming.Start, upcoming.End)
	}

	essies, ok := queries["essies"]
	if !ok {
		t.Fatal("Fused query missing 'essies' sub-query")
	}
	if essies.Calendar != "essies" {
		t.Errorf("Expected essies calendar 'essies', got '%s'", essies.Calendar)
	}
}

func TestFetchMenuNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sharples", "essies", "Test Agent", 5*time.Second)

	if _, err := client.FetchMenu(context.Background(), testBounds(t)); err == nil {
		t.Error("Expected error for HTTP 502, got nil")
	}
}

func TestFetchMenuMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sharples", "essies", "Test Agent", 5*time.Second)

	if _, err := client.FetchMenu(context.Background(), testBounds(t)); err == nil {
		t.Error("Expected error for malformed JSON, got nil")
	}
}

func TestFetchMenuMissingSubFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"today": {"data": []}, "upcoming": {"data": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sharples", "essies", "Test Agent", 5*time.Second)

	if _, err := client.FetchMenu(context.Background(), testBounds(t)); err == nil {
		t.Error("Expected error for missing sub-feed, got nil")
	}
}

func TestFetchMenuUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "sharples", "essies", "Test Agent", time.Second)

	if _, err := client.FetchMenu(context.Background(), testBounds(t)); err == nil {
		t.Error("Expected error for unreachable upstream, got nil")
	}
}
