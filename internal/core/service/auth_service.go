package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// AuthService implements staff login, account creation, the one-time setup
// flow and principal resolution for the auth middleware.
type AuthService struct {
	repo        ports.StaffRepository
	tokens      ports.TokenIssuer
	setupSecret string
	log         zerolog.Logger
}

func NewAuthService(repo ports.StaffRepository, tokens ports.TokenIssuer, setupSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, setupSecret: setupSecret, log: log}
}

// Login verifies credentials and issues a staff-namespace token. Unknown
// email, deactivated account and wrong password all collapse into
// ErrInvalidCredentials so the response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive || !VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("staff login")
	return token, user, nil
}

// CreateUser registers a new staff account. Route-level middleware restricts
// this to admins.
func (s *AuthService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrInvalidInput)
	}
	role := domain.Role(in.Role)
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be admin or moderator", domain.ErrInvalidInput)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

// Setup bootstraps the first admin. The caller must present the configured
// setup secret, and the flow refuses once any staff account exists.
func (s *AuthService) Setup(ctx context.Context, secret string, in ports.CreateUserInput) (*domain.User, error) {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.setupSecret)) != 1 {
		return nil, domain.ErrForbidden
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count staff: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrSetupComplete
	}

	in.Role = string(domain.RoleAdmin)
	user, err := s.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("initial admin created")
	return user, nil
}

// ChangePassword verifies the current password before hashing and storing
// the next one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

// PrincipalByID resolves a verified token subject to a live staff principal.
// Deactivated accounts resolve to not-found so stale tokens stop working.
func (s *AuthService) PrincipalByID(ctx context.Context, id string) (*domain.Principal, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return user.Principal(), nil
}
