package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// CreateUserInput carries the data for a new staff account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService covers staff authentication and account management.
type AuthService interface {
	// Login verifies credentials and returns a staff-namespace token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CreateUser registers a new staff account (admin-gated at the route).
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// Setup creates the first admin account. It is guarded by the setup
	// secret and refuses once any staff account exists.
	Setup(ctx context.Context, secret string, in CreateUserInput) (*domain.User, error)
	// ChangePassword verifies the current password before setting a new one.
	ChangePassword(ctx context.Context, userID, current, next string) error
	// PrincipalByID resolves a token subject to a live principal. Missing or
	// deactivated accounts fail.
	PrincipalByID(ctx context.Context, id string) (*domain.Principal, error)
}
