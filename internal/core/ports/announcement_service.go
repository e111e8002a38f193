package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// AnnouncementInput carries announcement content for create and update.
type AnnouncementInput struct {
	Title     string
	TitleEs   string
	Content   string
	ContentEs string
	Priority  int
}

// AnnouncementService covers announcement CRUD and the single-active
// invariant. Update and Delete enforce ownership: moderators touch only
// their own announcements, admins touch any.
type AnnouncementService interface {
	Create(ctx context.Context, in AnnouncementInput, createdBy string) (*domain.Announcement, error)
	Update(ctx context.Context, id string, in AnnouncementInput, p *domain.Principal) (*domain.Announcement, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Announcement, error)
	// GetActive returns the active announcement, or (nil, nil) when none is
	// active — callers treat none as a valid state, not an error.
	GetActive(ctx context.Context) (*domain.Announcement, error)
	// Activate runs the activation protocol: deactivate all siblings, then
	// activate the target.
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, p *domain.Principal) error
}
