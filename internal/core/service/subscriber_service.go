package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// SubscriberService manages the email subscription list. Delivery itself is
// out of scope; this holds the records mailing jobs read.
type SubscriberService struct {
	repo ports.SubscriberRepository
	log  zerolog.Logger
}

func NewSubscriberService(repo ports.SubscriberRepository, log zerolog.Logger) *SubscriberService {
	return &SubscriberService{repo: repo, log: log}
}

func (s *SubscriberService) Subscribe(ctx context.Context, email, language string) (*domain.Subscriber, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	sub := &domain.Subscriber{
		Email:            email,
		Language:         normalizeLanguage(language),
		UnsubscribeToken: uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("subscriber_id", created.ID).Msg("subscription created")
	return created, nil
}

// Unsubscribe removes the subscription matching the opaque token from a
// mailing link.
func (s *SubscriberService) Unsubscribe(ctx context.Context, token string) error {
	sub, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, sub.ID)
}

func (s *SubscriberService) List(ctx context.Context) ([]*domain.Subscriber, error) {
	return s.repo.List(ctx)
}
