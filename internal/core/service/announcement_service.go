package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

const (
	activeAnnouncementKey = "parish:active:announcement"
	activeCacheTTL        = 5 * time.Minute
)

// AnnouncementService implements announcement CRUD and the global
// single-active invariant. Activation is two sequential per-document-atomic
// steps, so concurrent activations are last-writer-wins; acceptable for
// admin-paced usage.
type AnnouncementService struct {
	repo  ports.AnnouncementRepository
	cache ports.ContentCache
	log   zerolog.Logger
}

func NewAnnouncementService(repo ports.AnnouncementRepository, cache ports.ContentCache, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, cache: cache, log: log}
}

func (s *AnnouncementService) Create(ctx context.Context, in ports.AnnouncementInput, createdBy string) (*domain.Announcement, error) {
	if err := validateAnnouncement(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Announcement{
		Title:     in.Title,
		TitleEs:   in.TitleEs,
		Content:   in.Content,
		ContentEs: in.ContentEs,
		Priority:  in.Priority,
		IsActive:  false,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Insert(ctx, a)
}

// Update replaces the announcement content. Moderators may update only
// announcements they created; admins may update any.
func (s *AnnouncementService) Update(ctx context.Context, id string, in ports.AnnouncementInput, p *domain.Principal) (*domain.Announcement, error) {
	if err := validateAnnouncement(in); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanModify(a.CreatedBy) {
		return nil, domain.ErrForbidden
	}

	a.Title = in.Title
	a.TitleEs = in.TitleEs
	a.Content = in.Content
	a.ContentEs = in.ContentEs
	a.Priority = in.Priority
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context, activeOnly bool) ([]*domain.Announcement, error) {
	return s.repo.List(ctx, activeOnly)
}

// GetActive returns the active announcement or (nil, nil) when none is
// active. The result is cached briefly; cache trouble falls through to
// storage.
func (s *AnnouncementService) GetActive(ctx context.Context) (*domain.Announcement, error) {
	var cached domain.Announcement
	if hit, err := s.cache.Get(ctx, activeAnnouncementKey, &cached); err != nil {
		s.log.Warn().Err(err).Msg("announcement cache read failed")
	} else if hit {
		return &cached, nil
	}

	a, err := s.repo.FindActive(ctx)
	if err != nil || a == nil {
		return a, err
	}
	if err := s.cache.Set(ctx, activeAnnouncementKey, a, activeCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("announcement cache write failed")
	}
	return a, nil
}

// Activate enforces the single-active invariant: every sibling is
// deactivated first, and only once that bulk update has returned is the
// target flipped on. The two steps are not covered by a transaction; two
// interleaved activations settle on whichever target was set last.
func (s *AnnouncementService) Activate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeactivateOthers(ctx, id); err != nil {
		return fmt.Errorf("deactivate siblings: %w", err)
	}
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("activate announcement: %w", err)
	}

	s.invalidate(ctx)
	s.log.Info().Str("announcement_id", id).Msg("announcement activated")
	return nil
}

// Deactivate flips the flag only; siblings are untouched.
func (s *AnnouncementService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string, p *domain.Principal) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.CanModify(a.CreatedBy) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AnnouncementService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeAnnouncementKey); err != nil {
		s.log.Warn().Err(err).Msg("announcement cache invalidation failed")
	}
}

func validateAnnouncement(in ports.AnnouncementInput) error {
	if in.Title == "" || in.Content == "" {
		return fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}
	return nil
}
