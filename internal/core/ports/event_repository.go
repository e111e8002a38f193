package ports

import (
	"context"
	"time"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// EventRepository persists parish calendar events.
type EventRepository interface {
	Insert(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// ListUpcoming returns events ending at or after from, soonest first.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	// UpsertByExternalUID inserts or updates the event carrying the given
	// external calendar uid. Returns true when a new document was created.
	UpsertByExternalUID(ctx context.Context, e *domain.Event) (created bool, err error)
}
