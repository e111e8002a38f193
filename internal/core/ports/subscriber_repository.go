package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// SubscriberRepository persists email subscriptions. Insert reports
// domain.ErrSubscriberExists on a duplicate email.
type SubscriberRepository interface {
	Insert(ctx context.Context, s *domain.Subscriber) (*domain.Subscriber, error)
	FindByToken(ctx context.Context, token string) (*domain.Subscriber, error)
	List(ctx context.Context) ([]*domain.Subscriber, error)
	Delete(ctx context.Context, id string) error
}
