package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// RegisterMemberInput carries the data for a new member account.
type RegisterMemberInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Language  string
}

// UpdateProfileInput carries a member profile update.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Language  string
}

// MemberService covers member accounts: registration, member-namespace
// login, profile management and soft deactivation.
type MemberService interface {
	Register(ctx context.Context, in RegisterMemberInput) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (string, *domain.Member, error)
	Get(ctx context.Context, id string) (*domain.Member, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.Member, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	Deactivate(ctx context.Context, id string) error
	PrincipalByID(ctx context.Context, id string) (*domain.Principal, error)
}
