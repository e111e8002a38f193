package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// EventService implements parish event CRUD and the external calendar sync.
// Sync is a single fetch-and-upsert pass: no conflict resolution, no
// retries, no backpressure.
type EventService struct {
	repo     ports.EventRepository
	calendar ports.CalendarClient
	log      zerolog.Logger
}

func NewEventService(repo ports.EventRepository, calendar ports.CalendarClient, log zerolog.Logger) *EventService {
	return &EventService{repo: repo, calendar: calendar, log: log}
}

func (s *EventService) Create(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	if err := validateEvent(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &domain.Event{
		Title:         in.Title,
		TitleEs:       in.TitleEs,
		Description:   in.Description,
		DescriptionEs: in.DescriptionEs,
		Location:      in.Location,
		StartsAt:      in.StartsAt.UTC(),
		EndsAt:        in.EndsAt.UTC(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.repo.Insert(ctx, e)
}

func (s *EventService) Update(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	if err := validateEvent(in); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Title = in.Title
	e.TitleEs = in.TitleEs
	e.Description = in.Description
	e.DescriptionEs = in.DescriptionEs
	e.Location = in.Location
	e.StartsAt = in.StartsAt.UTC()
	e.EndsAt = in.EndsAt.UTC()
	e.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error) {
	if from.IsZero() {
		from = time.Now().UTC()
	}
	return s.repo.ListUpcoming(ctx, from, limit)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// SyncCalendar fetches the external feed and upserts every entry by its uid.
// Entries without a uid or start time are skipped, not failed: one bad feed
// entry must not abort the run.
func (s *EventService) SyncCalendar(ctx context.Context) (*ports.SyncResult, error) {
	entries, err := s.calendar.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar feed: %w", err)
	}

	result := &ports.SyncResult{Fetched: len(entries)}
	now := time.Now().UTC()

	for _, entry := range entries {
		if entry.UID == "" || entry.StartsAt.IsZero() {
			result.Skipped++
			continue
		}

		e := &domain.Event{
			Title:       entry.Title,
			TitleEs:     entry.TitleEs,
			Description: entry.Description,
			Location:    entry.Location,
			StartsAt:    entry.StartsAt.UTC(),
			EndsAt:      entry.EndsAt.UTC(),
			ExternalUID: entry.UID,
			UpdatedAt:   now,
		}

		created, err := s.repo.UpsertByExternalUID(ctx, e)
		if err != nil {
			s.log.Warn().Err(err).Str("uid", entry.UID).Msg("calendar entry upsert failed")
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.log.Info().
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("calendar sync completed")

	return result, nil
}

func validateEvent(in ports.EventInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if in.StartsAt.IsZero() {
		return fmt.Errorf("%w: start time is required", domain.ErrInvalidInput)
	}
	if !in.EndsAt.IsZero() && in.EndsAt.Before(in.StartsAt) {
		return fmt.Errorf("%w: end time precedes start time", domain.ErrInvalidInput)
	}
	return nil
}
