package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config holds the external calendar feed settings.
type Config struct {
	FeedURL string
	Token   string // optional bearer token for protected feeds

	HTTPClient *http.Client
}

// Client implements ports.CalendarClient against a JSON event feed.
type Client struct {
	feedURL    string
	token      string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		feedURL:    cfg.FeedURL,
		token:      cfg.Token,
		httpClient: client,
	}
}

type feedEvent struct {
	UID         string    `json:"uid"`
	Title       string    `json:"title"`
	TitleEs     string    `json:"title_es"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// Fetch downloads the full feed. Entries are returned as-is; the sync loop
// decides what is usable.
func (c *Client) Fetch(ctx context.Context) ([]ports.CalendarEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("calendar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
	}

	var events []feedEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("calendar decode: %w", err)
	}

	entries := make([]ports.CalendarEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, ports.CalendarEntry{
			UID:         e.UID,
			Title:       e.Title,
			TitleEs:     e.TitleEs,
			Description: e.Description,
			Location:    e.Location,
			StartsAt:    e.Start,
			EndsAt:      e.End,
		})
	}
	return entries, nil
}
