// Package polygon implements the market-data provider client: a REST client
// for historical aggregates and a WebSocket stream for live minute bars.
package polygon

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"IntraPull/internal/domain/models"
	drepo "IntraPull/internal/domain/repository"
	xhttp "IntraPull/pkg/http"
)

// Client fetches aggregate bars over the Polygon-style REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// NewClient creates a provider REST client.
func NewClient(apiKey, baseURL string, timeout time.Duration) drepo.Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type aggsResponse struct {
	Status       string          `json:"status"`
	Ticker       string          `json:"ticker"`
	ResultsCount int             `json:"resultsCount"`
	Results      []models.RawBar `json:"results"`
}

// FetchBars retrieves raw aggregate bars for [from, to], ascending by time.
// A zero-bar response is not an error; the pipeline treats it as "no data".
func (c *Client) FetchBars(ctx context.Context, symbol string, interval drepo.Interval, from, to time.Time) ([]models.RawBar, error) {
	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/%s/%s/%s",
		c.baseURL, symbol, interval, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var resp aggsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: http.MethodGet,
		URL:    url,
		QueryParams: map[string]string{
			"adjusted": "true",
			"sort":     "asc",
			"limit":    "50000",
			"apiKey":   c.apiKey,
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s bars: %w", symbol, interval, err)
	}

	bars := resp.Results
	// The API promises ascending order; enforce it so downstream stages can
	// rely on it.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp < bars[j].Timestamp })
	return bars, nil
}
