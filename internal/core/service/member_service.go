package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// MemberService implements parish member registration, login in the member
// token namespace, profile management and soft deactivation.
type MemberService struct {
	repo   ports.MemberRepository
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewMemberService(repo ports.MemberRepository, tokens ports.TokenIssuer, log zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, tokens: tokens, log: log}
}

func (s *MemberService) Register(ctx context.Context, in ports.RegisterMemberInput) (*domain.Member, error) {
	if in.Email == "" || in.FirstName == "" {
		return nil, fmt.Errorf("%w: email and first name are required", domain.ErrInvalidInput)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.Member{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Language:     normalizeLanguage(in.Language),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, member)
}

// Login verifies credentials and issues a member-namespace token. As with
// staff login, all failure modes collapse into ErrInvalidCredentials.
func (s *MemberService) Login(ctx context.Context, email, password string) (string, *domain.Member, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	member, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !member.IsActive || !VerifyPassword(password, member.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(member.Principal())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, member, nil
}

func (s *MemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MemberService) UpdateProfile(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.Member, error) {
	if in.FirstName == "" {
		return nil, fmt.Errorf("%w: first name is required", domain.ErrInvalidInput)
	}
	if err := s.repo.UpdateProfile(ctx, id, in.FirstName, in.LastName, normalizeLanguage(in.Language)); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *MemberService) ChangePassword(ctx context.Context, id, current, next string) error {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !VerifyPassword(current, member.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// Deactivate soft-deletes the account. The record stays; login and token
// resolution stop working.
func (s *MemberService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.log.Info().Str("member_id", id).Msg("member deactivated")
	return nil
}

func (s *MemberService) PrincipalByID(ctx context.Context, id string) (*domain.Principal, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, domain.ErrMemberNotFound
	}
	return member.Principal(), nil
}

func normalizeLanguage(lang string) string {
	if lang == "es" {
		return "es"
	}
	return "en"
}
