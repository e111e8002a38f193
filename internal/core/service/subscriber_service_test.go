package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

type stubSubscriberRepo struct {
	docs   map[string]*domain.Subscriber
	nextID int
}

func newStubSubscriberRepo() *stubSubscriberRepo {
	return &stubSubscriberRepo{docs: make(map[string]*domain.Subscriber)}
}

func (r *stubSubscriberRepo) Insert(_ context.Context, s *domain.Subscriber) (*domain.Subscriber, error) {
	for _, existing := range r.docs {
		if existing.Email == s.Email {
			return nil, domain.ErrSubscriberExists
		}
	}
	r.nextID++
	clone := *s
	clone.ID = fmt.Sprintf("s%d", r.nextID)
	r.docs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSubscriberRepo) FindByToken(_ context.Context, token string) (*domain.Subscriber, error) {
	for _, s := range r.docs {
		if s.UnsubscribeToken == token {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSubscriberNotFound
}

func (r *stubSubscriberRepo) List(_ context.Context) ([]*domain.Subscriber, error) {
	out := make([]*domain.Subscriber, 0, len(r.docs))
	for _, s := range r.docs {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubSubscriberRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrSubscriberNotFound
	}
	delete(r.docs, id)
	return nil
}

func TestSubscriberService_SubscribeUnsubscribe(t *testing.T) {
	repo := newStubSubscriberRepo()
	svc := NewSubscriberService(repo, zerolog.Nop())

	sub, err := svc.Subscribe(context.Background(), "news@example.com", "es")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.UnsubscribeToken == "" {
		t.Fatalf("expected an unsubscribe token")
	}
	if sub.Language != "es" {
		t.Fatalf("unexpected language: %q", sub.Language)
	}

	// Same email again conflicts.
	if _, err := svc.Subscribe(context.Background(), "news@example.com", "en"); !errors.Is(err, domain.ErrSubscriberExists) {
		t.Fatalf("expected ErrSubscriberExists, got %v", err)
	}

	if err := svc.Unsubscribe(context.Background(), sub.UnsubscribeToken); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if len(repo.docs) != 0 {
		t.Fatalf("subscription not removed")
	}

	// The token is single-use: a second unsubscribe finds nothing.
	if err := svc.Unsubscribe(context.Background(), sub.UnsubscribeToken); !errors.Is(err, domain.ErrSubscriberNotFound) {
		t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
	}
}

func TestSubscriberService_Subscribe_RequiresEmail(t *testing.T) {
	svc := NewSubscriberService(newStubSubscriberRepo(), zerolog.Nop())

	if _, err := svc.Subscribe(context.Background(), "", "en"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
