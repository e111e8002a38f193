package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// stubCache is an in-memory ports.ContentCache with JSON round-tripping, so
// cache hits exercise the same decode path as Redis.
type stubCache struct {
	store map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, key string, v any) (bool, error) {
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (c *stubCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = raw
	return nil
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// stubAnnouncementRepo keeps announcements in memory and records the order
// of activation-protocol calls.
type stubAnnouncementRepo struct {
	docs   map[string]*domain.Announcement
	nextID int
	calls  []string
}

func newStubAnnouncementRepo() *stubAnnouncementRepo {
	return &stubAnnouncementRepo{docs: make(map[string]*domain.Announcement)}
}

func (r *stubAnnouncementRepo) Insert(_ context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	r.nextID++
	clone := *a
	clone.ID = fmt.Sprintf("a%d", r.nextID)
	r.docs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAnnouncementRepo) FindByID(_ context.Context, id string) (*domain.Announcement, error) {
	a, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrAnnouncementNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAnnouncementRepo) List(_ context.Context, activeOnly bool) ([]*domain.Announcement, error) {
	var out []*domain.Announcement
	for _, a := range r.docs {
		if activeOnly && !a.IsActive {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAnnouncementRepo) FindActive(_ context.Context) (*domain.Announcement, error) {
	var best *domain.Announcement
	for _, a := range r.docs {
		if !a.IsActive {
			continue
		}
		if best == nil || a.Priority > best.Priority ||
			(a.Priority == best.Priority && a.CreatedAt.After(best.CreatedAt)) {
			best = a
		}
	}
	if best == nil {
		return nil, nil
	}
	clone := *best
	return &clone, nil
}

func (r *stubAnnouncementRepo) Update(_ context.Context, a *domain.Announcement) error {
	if _, ok := r.docs[a.ID]; !ok {
		return domain.ErrAnnouncementNotFound
	}
	clone := *a
	r.docs[a.ID] = &clone
	return nil
}

func (r *stubAnnouncementRepo) DeactivateOthers(_ context.Context, excludeID string) error {
	r.calls = append(r.calls, "deactivate_others")
	for id, a := range r.docs {
		if id != excludeID {
			a.IsActive = false
		}
	}
	return nil
}

func (r *stubAnnouncementRepo) SetActive(_ context.Context, id string, active bool) error {
	r.calls = append(r.calls, fmt.Sprintf("set_active:%s:%t", id, active))
	a, ok := r.docs[id]
	if !ok {
		return domain.ErrAnnouncementNotFound
	}
	a.IsActive = active
	return nil
}

func (r *stubAnnouncementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrAnnouncementNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *stubAnnouncementRepo) activeIDs() []string {
	var out []string
	for id, a := range r.docs {
		if a.IsActive {
			out = append(out, id)
		}
	}
	return out
}

func newAnnouncementFixture(t *testing.T, n int) (*AnnouncementService, *stubAnnouncementRepo) {
	t.Helper()
	repo := newStubAnnouncementRepo()
	svc := NewAnnouncementService(repo, newStubCache(), zerolog.Nop())
	for i := 0; i < n; i++ {
		if _, err := svc.Create(context.Background(), ports.AnnouncementInput{
			Title:   fmt.Sprintf("Notice %d", i+1),
			Content: "Mass schedule change",
		}, "mod1"); err != nil {
			t.Fatalf("seed announcement: %v", err)
		}
	}
	return svc, repo
}

func TestAnnouncementService_Activate_SingleActive(t *testing.T) {
	svc, repo := newAnnouncementFixture(t, 3)

	// Prior state should not matter: force one active by hand first.
	repo.docs["a1"].IsActive = true

	if err := svc.Activate(context.Background(), "a2"); err != nil {
		t.Fatalf("activate: %v", err)
	}

	active := repo.activeIDs()
	if len(active) != 1 || active[0] != "a2" {
		t.Fatalf("expected exactly [a2] active, got %v", active)
	}
}

func TestAnnouncementService_Activate_Ordering(t *testing.T) {
	svc, repo := newAnnouncementFixture(t, 2)

	if err := svc.Activate(context.Background(), "a1"); err != nil {
		t.Fatalf("activate: %v", err)
	}

	// Siblings must be deactivated before the target flips on.
	want := []string{"deactivate_others", "set_active:a1:true"}
	if len(repo.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", repo.calls)
	}
	for i := range want {
		if repo.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, repo.calls[i], want[i])
		}
	}
}

func TestAnnouncementService_Activate_LastWriterWins(t *testing.T) {
	svc, repo := newAnnouncementFixture(t, 3)

	if err := svc.Activate(context.Background(), "a1"); err != nil {
		t.Fatalf("activate a1: %v", err)
	}
	if err := svc.Activate(context.Background(), "a3"); err != nil {
		t.Fatalf("activate a3: %v", err)
	}

	active := repo.activeIDs()
	if len(active) != 1 || active[0] != "a3" {
		t.Fatalf("expected exactly [a3] active after second activation, got %v", active)
	}
}

func TestAnnouncementService_Deactivate_LeavesSiblings(t *testing.T) {
	svc, repo := newAnnouncementFixture(t, 2)
	repo.docs["a1"].IsActive = true
	repo.docs["a2"].IsActive = true // invariant already violated by hand

	if err := svc.Deactivate(context.Background(), "a1"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// Toggling off never touches siblings, even odd ones.
	if repo.docs["a1"].IsActive {
		t.Fatalf("a1 still active")
	}
	if !repo.docs["a2"].IsActive {
		t.Fatalf("deactivate must not touch siblings")
	}
}

func TestAnnouncementService_GetActive_None(t *testing.T) {
	svc, _ := newAnnouncementFixture(t, 2)

	a, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("getActive on all-inactive set must not error, got %v", err)
	}
	if a != nil {
		t.Fatalf("expected nil announcement, got %+v", a)
	}
}

func TestAnnouncementService_GetActive_PriorityWins(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := NewAnnouncementService(repo, newStubCache(), zerolog.Nop())

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, prio := range []int{1, 5, 5} {
		a := &domain.Announcement{
			Title: fmt.Sprintf("n%d", i), Content: "c",
			Priority: prio, IsActive: true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if _, err := repo.Insert(context.Background(), a); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("getActive: %v", err)
	}
	// Highest priority wins; the newest of the tied pair is a3.
	if got == nil || got.ID != "a3" {
		t.Fatalf("expected a3, got %+v", got)
	}
}

func TestAnnouncementService_GetActive_CachesResult(t *testing.T) {
	svc, repo := newAnnouncementFixture(t, 1)
	if err := svc.Activate(context.Background(), "a1"); err != nil {
		t.Fatalf("activate: %v", err)
	}

	first, err := svc.GetActive(context.Background())
	if err != nil || first == nil {
		t.Fatalf("getActive: %v %v", first, err)
	}

	// Mutate storage behind the cache; the cached copy should be served.
	repo.docs["a1"].Title = "changed behind cache"
	second, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("getActive: %v", err)
	}
	if second.Title != first.Title {
		t.Fatalf("expected cached title %q, got %q", first.Title, second.Title)
	}
}

func TestAnnouncementService_Ownership(t *testing.T) {
	svc, _ := newAnnouncementFixture(t, 1) // created_by mod1

	otherMod := &domain.Principal{ID: "mod2", Role: domain.RoleModerator}
	admin := &domain.Principal{ID: "boss", Role: domain.RoleAdmin}
	owner := &domain.Principal{ID: "mod1", Role: domain.RoleModerator}

	in := ports.AnnouncementInput{Title: "t", Content: "c"}

	if _, err := svc.Update(context.Background(), "a1", in, otherMod); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner moderator, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "a1", in, owner); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if err := svc.Delete(context.Background(), "a1", admin); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestAnnouncementService_Create_Validation(t *testing.T) {
	svc, _ := newAnnouncementFixture(t, 0)

	if _, err := svc.Create(context.Background(), ports.AnnouncementInput{Title: "no content"}, "mod1"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
