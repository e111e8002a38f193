package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// MemberRepository persists parish member accounts. Members are never hard
// deleted; SetActive(false) is the only removal.
type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member) (*domain.Member, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	FindByID(ctx context.Context, id string) (*domain.Member, error)
	UpdateProfile(ctx context.Context, id string, firstName, lastName, language string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
}
