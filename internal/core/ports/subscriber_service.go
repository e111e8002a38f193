package ports

import (
	"context"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// SubscriberService covers the email subscription list.
type SubscriberService interface {
	Subscribe(ctx context.Context, email, language string) (*domain.Subscriber, error)
	Unsubscribe(ctx context.Context, token string) error
	List(ctx context.Context) ([]*domain.Subscriber, error)
}
