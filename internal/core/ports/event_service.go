package ports

import (
	"context"
	"time"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// EventInput carries event content for create and update.
type EventInput struct {
	Title         string
	TitleEs       string
	Description   string
	DescriptionEs string
	Location      string
	StartsAt      time.Time
	EndsAt        time.Time
}

// SyncResult summarizes one calendar sync run.
type SyncResult struct {
	Fetched int `json:"fetched"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// EventService covers parish event CRUD plus the external calendar
// fetch-and-upsert sync. Sync has no conflict resolution or retries.
type EventService interface {
	Create(ctx context.Context, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) error
	SyncCalendar(ctx context.Context) (*SyncResult, error)
}
