package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

type stubAnnouncementService struct {
	createFn    func(ctx context.Context, in ports.AnnouncementInput, createdBy string) (*domain.Announcement, error)
	getActiveFn func(ctx context.Context) (*domain.Announcement, error)
	activateFn  func(ctx context.Context, id string) error
}

func (s *stubAnnouncementService) Create(ctx context.Context, in ports.AnnouncementInput, createdBy string) (*domain.Announcement, error) {
	return s.createFn(ctx, in, createdBy)
}

func (s *stubAnnouncementService) Update(context.Context, string, ports.AnnouncementInput, *domain.Principal) (*domain.Announcement, error) {
	return nil, domain.ErrAnnouncementNotFound
}

func (s *stubAnnouncementService) List(context.Context, bool) ([]*domain.Announcement, error) {
	return nil, nil
}

func (s *stubAnnouncementService) GetActive(ctx context.Context) (*domain.Announcement, error) {
	return s.getActiveFn(ctx)
}

func (s *stubAnnouncementService) Activate(ctx context.Context, id string) error {
	return s.activateFn(ctx, id)
}

func (s *stubAnnouncementService) Deactivate(context.Context, string) error { return nil }

func (s *stubAnnouncementService) Delete(context.Context, string, *domain.Principal) error {
	return nil
}

func TestAnnouncementHandler_Create_UsesPrincipalAsOwner(t *testing.T) {
	stub := &stubAnnouncementService{
		createFn: func(_ context.Context, in ports.AnnouncementInput, createdBy string) (*domain.Announcement, error) {
			if createdBy != "u7" {
				t.Fatalf("unexpected owner: %q", createdBy)
			}
			return &domain.Announcement{ID: "a1", Title: in.Title, CreatedBy: createdBy}, nil
		},
	}
	h := NewAnnouncementHandler(stub)

	c, rec := jsonContext(t, http.MethodPost, "/api/announcements",
		`{"title":"Pancake Breakfast","content":"Sunday after the 10am service","priority":5}`)
	c.Set("principal", &domain.Principal{ID: "u7", Role: domain.RoleModerator, Audience: domain.AudienceStaff})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAnnouncementHandler_Create_RequiresPrincipal(t *testing.T) {
	stub := &stubAnnouncementService{
		createFn: func(context.Context, ports.AnnouncementInput, string) (*domain.Announcement, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAnnouncementHandler(stub)

	c, _ := jsonContext(t, http.MethodPost, "/api/announcements", `{"title":"x","content":"y"}`)
	he, ok := h.Create(c).(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %v", he)
	}
}

func TestAnnouncementHandler_GetActive_NoneIsNullData(t *testing.T) {
	stub := &stubAnnouncementService{
		getActiveFn: func(context.Context) (*domain.Announcement, error) { return nil, nil },
	}
	h := NewAnnouncementHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/announcements/active", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("no active announcement must be 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope: %s", rec.Body.String())
	}
	if _, present := resp["data"]; present && resp["data"] != nil {
		t.Fatalf("expected empty data, got %v", resp["data"])
	}
}

func TestAnnouncementHandler_Activate(t *testing.T) {
	activated := ""
	stub := &stubAnnouncementService{
		activateFn: func(_ context.Context, id string) error {
			activated = id
			return nil
		},
	}
	h := NewAnnouncementHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/announcements/:id/activate")
	c.SetParamNames("id")
	c.SetParamValues("a42")

	if err := h.Activate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if activated != "a42" {
		t.Fatalf("expected a42 activated, got %q", activated)
	}
}
