// Package feed fetches and decodes the VicEmergency geojson incidents feed.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kuchel77/vicemergency-feed/internal/domain"
)

// DefaultURL is the public VicEmergency events feed.
const DefaultURL = "https://emergency.vic.gov.au/public/events-geojson.json"

// Client fetches the incidents feed over plain HTTP GET.
type Client struct {
	feedURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client for the given URL.
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch performs one GET of the feed and returns the parsed incidents.
func (c *Client) Fetch(ctx context.Context) ([]domain.Incident, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	incidents, err := domain.ParseFeed(data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("feed fetched", "incidents", len(incidents), "bytes", len(data))
	return incidents, nil
}
