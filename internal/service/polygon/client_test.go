package polygon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	drepo "IntraPull/internal/domain/repository"
)

func TestFetchBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/aggs/ticker/AAPL/range/1/minute/2024-03-04/2024-03-05" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Errorf("missing api key")
		}
		if r.URL.Query().Get("sort") != "asc" {
			t.Errorf("missing sort param")
		}
		w.Header().Set("Content-Type", "application/json")
		// Out of order on purpose: the client must sort ascending.
		w.Write([]byte(`{
			"status": "OK",
			"ticker": "AAPL",
			"resultsCount": 2,
			"results": [
				{"t": 1709560860000, "o": 10.1, "h": 10.2, "l": 10.0, "c": 10.15, "v": 120},
				{"t": 1709560800000, "o": 10.0, "h": 10.1, "l": 9.9, "c": 10.1, "v": 100}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, 5*time.Second)

	loc, _ := time.LoadLocation("America/New_York")
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, loc)
	to := time.Date(2024, 3, 5, 0, 0, 0, 0, loc)

	bars, err := c.FetchBars(context.Background(), "AAPL", drepo.IntervalMinute, from, to)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Timestamp != 1709560800000 || bars[1].Timestamp != 1709560860000 {
		t.Fatalf("bars not ascending: %d, %d", bars[0].Timestamp, bars[1].Timestamp)
	}
	if bars[0].Open != 10.0 || bars[0].Volume != 100 {
		t.Fatalf("unexpected bar %+v", bars[0])
	}
}

func TestFetchBarsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "OK", "ticker": "XYZ", "resultsCount": 0}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, 5*time.Second)
	bars, err := c.FetchBars(context.Background(), "XYZ", drepo.IntervalDay, time.Now().AddDate(0, 0, -5), time.Now())
	if err != nil {
		t.Fatalf("zero results must not error: %v", err)
	}
	if len(bars) != 0 {
		t.Fatalf("expected no bars, got %d", len(bars))
	}
}

func TestFetchBarsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, 5*time.Second)
	if _, err := c.FetchBars(context.Background(), "AAPL", drepo.IntervalMinute, time.Now().AddDate(0, 0, -1), time.Now()); err == nil {
		t.Fatalf("expected error on 502")
	}
}
