package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// AnnouncementRepository persists announcements. The storage offers
// per-document atomic updates only; the activation protocol is enforced by
// the service calling DeactivateOthers before SetActive.
type AnnouncementRepository interface {
	Insert(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	FindByID(ctx context.Context, id string) (*domain.Announcement, error)
	// List returns announcements sorted by priority desc, newest first.
	// When activeOnly is true only active announcements are returned.
	List(ctx context.Context, activeOnly bool) ([]*domain.Announcement, error)
	// FindActive returns the highest-priority active announcement, newest
	// winning ties, or (nil, nil) when none is active.
	FindActive(ctx context.Context) (*domain.Announcement, error)
	Update(ctx context.Context, a *domain.Announcement) error
	// DeactivateOthers clears is_active on every announcement except excludeID.
	DeactivateOthers(ctx context.Context, excludeID string) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
