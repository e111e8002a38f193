package ports

import (
	"context"
	"time"
)

// CalendarEntry is one event as published by the external calendar feed.
type CalendarEntry struct {
	UID         string
	Title       string
	TitleEs     string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

// CalendarClient fetches the full external calendar feed. Sync is a plain
// fetch-and-upsert loop over the result.
type CalendarClient interface {
	Fetch(ctx context.Context) ([]CalendarEntry, error)
}
