package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

const activeBulletinKey = "parish:active:bulletin"

// BulletinService implements weekly bulletin upload, per-week activation and
// file retrieval. File writes and record writes are not transactional: the
// file goes in first, and a failed record insert triggers best-effort
// removal of the just-written file.
type BulletinService struct {
	repo  ports.BulletinRepository
	files ports.FileStore
	cache ports.ContentCache
	log   zerolog.Logger
}

func NewBulletinService(repo ports.BulletinRepository, files ports.FileStore, cache ports.ContentCache, log zerolog.Logger) *BulletinService {
	return &BulletinService{repo: repo, files: files, cache: cache, log: log}
}

func (s *BulletinService) Upload(ctx context.Context, in ports.UploadBulletinInput) (*domain.Bulletin, error) {
	if in.Title == "" || in.Date.IsZero() || len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: title, date and file are required", domain.ErrInvalidInput)
	}

	weekKey := domain.WeekKeyOf(in.Date)
	fileKey := fmt.Sprintf("bulletins/%s/%s%s", weekKey, uuid.NewString(), path.Ext(in.FileName))

	if err := s.files.Put(ctx, fileKey, in.Data, in.ContentType); err != nil {
		return nil, fmt.Errorf("store bulletin file: %w", err)
	}

	now := time.Now().UTC()
	b := &domain.Bulletin{
		Title:     in.Title,
		TitleEs:   in.TitleEs,
		Date:      in.Date.UTC(),
		WeekKey:   weekKey,
		FileKey:   fileKey,
		FileName:  in.FileName,
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, b)
	if err != nil {
		// Record commit failed after the file write; clean up best-effort.
		// A crash here can still leak the object.
		if rmErr := s.files.Remove(ctx, fileKey); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("file_key", fileKey).Msg("orphaned bulletin file not cleaned up")
		}
		return nil, err
	}
	return created, nil
}

func (s *BulletinService) List(ctx context.Context, limit int) ([]*domain.Bulletin, error) {
	return s.repo.List(ctx, limit)
}

// GetCurrent returns the most recent active bulletin or (nil, nil) when no
// bulletin is active.
func (s *BulletinService) GetCurrent(ctx context.Context) (*domain.Bulletin, error) {
	var cached domain.Bulletin
	if hit, err := s.cache.Get(ctx, activeBulletinKey, &cached); err != nil {
		s.log.Warn().Err(err).Msg("bulletin cache read failed")
	} else if hit {
		return &cached, nil
	}

	b, err := s.repo.FindCurrentActive(ctx)
	if err != nil || b == nil {
		return b, err
	}
	if err := s.cache.Set(ctx, activeBulletinKey, b, activeCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("bulletin cache write failed")
	}
	return b, nil
}

// Activate enforces the per-week single-active invariant: siblings sharing
// the target's week key are deactivated first, then the target is flipped
// on. Same last-writer-wins caveat as announcements.
func (s *BulletinService) Activate(ctx context.Context, id string) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeactivateOthersInWeek(ctx, b.WeekKey, id); err != nil {
		return fmt.Errorf("deactivate week siblings: %w", err)
	}
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("activate bulletin: %w", err)
	}

	s.invalidate(ctx)
	s.log.Info().Str("bulletin_id", id).Str("week", b.WeekKey).Msg("bulletin activated")
	return nil
}

func (s *BulletinService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes the backing file best-effort before the record. A failed
// file removal is logged and never blocks record deletion, so an object may
// leak; the record is the source of truth.
func (s *BulletinService) Delete(ctx context.Context, id string) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.Remove(ctx, b.FileKey); err != nil {
		s.log.Warn().Err(err).Str("bulletin_id", id).Str("file_key", b.FileKey).Msg("bulletin file removal failed")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *BulletinService) File(ctx context.Context, id string) ([]byte, string, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, contentType, err := s.files.Get(ctx, b.FileKey)
	if err != nil {
		return nil, "", fmt.Errorf("fetch bulletin file: %w", err)
	}
	return data, contentType, nil
}

func (s *BulletinService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeBulletinKey); err != nil {
		s.log.Warn().Err(err).Msg("bulletin cache invalidation failed")
	}
}
