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

type stubBulletinRepo struct {
	docs       map[string]*domain.Bulletin
	nextID     int
	failInsert bool
}

func newStubBulletinRepo() *stubBulletinRepo {
	return &stubBulletinRepo{docs: make(map[string]*domain.Bulletin)}
}

func (r *stubBulletinRepo) Insert(_ context.Context, b *domain.Bulletin) (*domain.Bulletin, error) {
	if r.failInsert {
		return nil, errors.New("insert failed")
	}
	r.nextID++
	clone := *b
	clone.ID = fmt.Sprintf("b%d", r.nextID)
	r.docs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBulletinRepo) FindByID(_ context.Context, id string) (*domain.Bulletin, error) {
	b, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrBulletinNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBulletinRepo) List(_ context.Context, _ int) ([]*domain.Bulletin, error) {
	var out []*domain.Bulletin
	for _, b := range r.docs {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBulletinRepo) FindCurrentActive(_ context.Context) (*domain.Bulletin, error) {
	var best *domain.Bulletin
	for _, b := range r.docs {
		if b.IsActive && (best == nil || b.Date.After(best.Date)) {
			best = b
		}
	}
	if best == nil {
		return nil, nil
	}
	clone := *best
	return &clone, nil
}

func (r *stubBulletinRepo) DeactivateOthersInWeek(_ context.Context, weekKey, excludeID string) error {
	for id, b := range r.docs {
		if id != excludeID && b.WeekKey == weekKey {
			b.IsActive = false
		}
	}
	return nil
}

func (r *stubBulletinRepo) SetActive(_ context.Context, id string, active bool) error {
	b, ok := r.docs[id]
	if !ok {
		return domain.ErrBulletinNotFound
	}
	b.IsActive = active
	return nil
}

func (r *stubBulletinRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrBulletinNotFound
	}
	delete(r.docs, id)
	return nil
}

// stubFileStore records operations and can fail selectively.
type stubFileStore struct {
	objects    map[string][]byte
	failRemove bool
	removed    []string
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{objects: make(map[string][]byte)}
}

func (s *stubFileStore) Put(_ context.Context, key string, data []byte, _ string) error {
	s.objects[key] = data
	return nil
}

func (s *stubFileStore) Get(_ context.Context, key string) ([]byte, string, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, "", errors.New("object not found")
	}
	return data, "application/pdf", nil
}

func (s *stubFileStore) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	if s.failRemove {
		return errors.New("remove failed")
	}
	delete(s.objects, key)
	return nil
}

func newBulletinFixture() (*BulletinService, *stubBulletinRepo, *stubFileStore) {
	repo := newStubBulletinRepo()
	files := newStubFileStore()
	svc := NewBulletinService(repo, files, newStubCache(), zerolog.Nop())
	return svc, repo, files
}

func uploadInput(date time.Time) ports.UploadBulletinInput {
	return ports.UploadBulletinInput{
		Title:       "Sunday Bulletin",
		TitleEs:     "Boletín Dominical",
		Date:        date,
		FileName:    "bulletin.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	}
}

func TestBulletinService_Upload(t *testing.T) {
	svc, _, files := newBulletinFixture()

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	b, err := svc.Upload(context.Background(), uploadInput(date))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if b.WeekKey != domain.WeekKeyOf(date) {
		t.Fatalf("week key %s, want %s", b.WeekKey, domain.WeekKeyOf(date))
	}
	if b.IsActive {
		t.Fatalf("new bulletin must start inactive")
	}
	if _, ok := files.objects[b.FileKey]; !ok {
		t.Fatalf("file not stored under %s", b.FileKey)
	}
}

func TestBulletinService_Upload_InsertFailureCleansFile(t *testing.T) {
	svc, repo, files := newBulletinFixture()
	repo.failInsert = true

	_, err := svc.Upload(context.Background(), uploadInput(time.Now()))
	if err == nil {
		t.Fatalf("expected insert failure")
	}
	if len(files.objects) != 0 {
		t.Fatalf("file not cleaned up after failed record commit")
	}
}

func TestBulletinService_Activate_PerWeekPartition(t *testing.T) {
	svc, repo, _ := newBulletinFixture()

	week1 := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	b1, _ := svc.Upload(context.Background(), uploadInput(week1)) // b1, week 1
	b2, _ := svc.Upload(context.Background(), uploadInput(week1)) // b2, week 1
	b3, _ := svc.Upload(context.Background(), uploadInput(week2)) // b3, week 2

	if err := svc.Activate(context.Background(), b1.ID); err != nil {
		t.Fatalf("activate b1: %v", err)
	}
	if err := svc.Activate(context.Background(), b3.ID); err != nil {
		t.Fatalf("activate b3: %v", err)
	}
	// Activating b2 must displace b1 (same week) but leave b3 alone.
	if err := svc.Activate(context.Background(), b2.ID); err != nil {
		t.Fatalf("activate b2: %v", err)
	}

	if repo.docs[b1.ID].IsActive {
		t.Fatalf("b1 should have been displaced by b2")
	}
	if !repo.docs[b2.ID].IsActive {
		t.Fatalf("b2 should be active")
	}
	if !repo.docs[b3.ID].IsActive {
		t.Fatalf("b3 is in another week and must stay active")
	}
}

func TestBulletinService_GetCurrent_None(t *testing.T) {
	svc, _, _ := newBulletinFixture()

	b, err := svc.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("getCurrent with no bulletins must not error, got %v", err)
	}
	if b != nil {
		t.Fatalf("expected nil bulletin, got %+v", b)
	}
}

func TestBulletinService_Delete_FileFailureDoesNotBlock(t *testing.T) {
	svc, repo, files := newBulletinFixture()

	b, _ := svc.Upload(context.Background(), uploadInput(time.Now()))
	files.failRemove = true

	if err := svc.Delete(context.Background(), b.ID); err != nil {
		t.Fatalf("delete must succeed despite file removal failure, got %v", err)
	}
	if _, ok := repo.docs[b.ID]; ok {
		t.Fatalf("record still present after delete")
	}
	if len(files.removed) != 1 {
		t.Fatalf("file removal was not attempted")
	}
}

func TestBulletinService_File(t *testing.T) {
	svc, _, _ := newBulletinFixture()

	b, _ := svc.Upload(context.Background(), uploadInput(time.Now()))
	data, contentType, err := svc.File(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if string(data) != "%PDF-1.4" || contentType != "application/pdf" {
		t.Fatalf("unexpected file payload: %q %q", data, contentType)
	}
}

func TestWeekKeyOf(t *testing.T) {
	// Both days fall in ISO week 35 of 2026.
	a := domain.WeekKeyOf(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	b := domain.WeekKeyOf(time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC))
	if a != b {
		t.Fatalf("same ISO week produced different keys: %s vs %s", a, b)
	}
	c := domain.WeekKeyOf(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if c == a {
		t.Fatalf("next week must produce a different key")
	}
}
