package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// BulletinRepository persists weekly bulletins.
type BulletinRepository interface {
	Insert(ctx context.Context, b *domain.Bulletin) (*domain.Bulletin, error)
	FindByID(ctx context.Context, id string) (*domain.Bulletin, error)
	// List returns bulletins sorted by bulletin date descending.
	List(ctx context.Context, limit int) ([]*domain.Bulletin, error)
	// FindCurrentActive returns the active bulletin with the most recent
	// date, or (nil, nil) when no bulletin is active anywhere.
	FindCurrentActive(ctx context.Context) (*domain.Bulletin, error)
	// DeactivateOthersInWeek clears is_active on every bulletin sharing
	// weekKey except excludeID.
	DeactivateOthersInWeek(ctx context.Context, weekKey, excludeID string) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
