package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

type stubEventRepo struct {
	docs   map[string]*domain.Event
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{docs: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("e%d", r.nextID)
	r.docs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) ListUpcoming(_ context.Context, from time.Time, _ int) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.docs {
		if !e.EndsAt.Before(from) {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubEventRepo) Update(_ context.Context, e *domain.Event) error {
	if _, ok := r.docs[e.ID]; !ok {
		return domain.ErrEventNotFound
	}
	clone := *e
	r.docs[e.ID] = &clone
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *stubEventRepo) UpsertByExternalUID(_ context.Context, e *domain.Event) (bool, error) {
	for _, existing := range r.docs {
		if existing.ExternalUID == e.ExternalUID {
			e.ID = existing.ID
			clone := *e
			r.docs[existing.ID] = &clone
			return false, nil
		}
	}
	_, err := r.Insert(context.Background(), e)
	return true, err
}

type stubCalendar struct {
	entries []ports.CalendarEntry
	err     error
}

func (c *stubCalendar) Fetch(_ context.Context) ([]ports.CalendarEntry, error) {
	return c.entries, c.err
}

func TestEventService_SyncCalendar(t *testing.T) {
	repo := newStubEventRepo()
	start := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)
	cal := &stubCalendar{entries: []ports.CalendarEntry{
		{UID: "ext-1", Title: "Sunday Mass", StartsAt: start, EndsAt: start.Add(time.Hour)},
		{UID: "ext-2", Title: "Choir Practice", StartsAt: start.Add(48 * time.Hour)},
		{Title: "no uid"}, // skipped
	}}
	svc := NewEventService(repo, cal, zerolog.Nop())

	result, err := svc.SyncCalendar(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Fetched != 3 || result.Created != 2 || result.Updated != 0 || result.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// A second run with a changed title upserts in place.
	cal.entries[0].Title = "Sunday Mass (updated)"
	result, err = svc.SyncCalendar(context.Background())
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Created != 0 || result.Updated != 2 {
		t.Fatalf("unexpected second result: %+v", result)
	}
	if len(repo.docs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.docs))
	}
	for _, e := range repo.docs {
		if e.ExternalUID == "ext-1" && e.Title != "Sunday Mass (updated)" {
			t.Fatalf("upsert did not update title: %q", e.Title)
		}
	}
}

func TestEventService_SyncCalendar_FetchError(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), &stubCalendar{err: errors.New("feed down")}, zerolog.Nop())

	if _, err := svc.SyncCalendar(context.Background()); err == nil {
		t.Fatalf("expected error when feed fetch fails")
	}
}

func TestEventService_Create_Validation(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), &stubCalendar{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.EventInput{Title: "no start"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	start := time.Now().UTC()
	if _, err := svc.Create(context.Background(), ports.EventInput{
		Title: "backwards", StartsAt: start, EndsAt: start.Add(-time.Hour),
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for end before start, got %v", err)
	}
}

func TestEventService_UpdateDelete(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, &stubCalendar{}, zerolog.Nop())

	start := time.Now().UTC().Add(time.Hour)
	created, err := svc.Create(context.Background(), ports.EventInput{Title: "Potluck", StartsAt: start})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.EventInput{Title: "Parish Potluck", StartsAt: start})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Parish Potluck" {
		t.Fatalf("title not updated: %q", updated.Title)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
