package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

func roleContext(t *testing.T, p *domain.Principal) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if p != nil {
		c.Set(principalKey, p)
	}
	return c
}

func TestRequireAdmin(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	if err := RequireAdmin(ok)(roleContext(t, &domain.Principal{ID: "u1", Role: domain.RoleAdmin})); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}

	he, _ := RequireAdmin(ok)(roleContext(t, &domain.Principal{ID: "u2", Role: domain.RoleModerator})).(*echo.HTTPError)
	if he == nil || he.Code != http.StatusForbidden {
		t.Fatalf("moderator should get 403, got %v", he)
	}

	he, _ = RequireAdmin(ok)(roleContext(t, nil)).(*echo.HTTPError)
	if he == nil || he.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous should get 401, got %v", he)
	}
}

func TestRequireModerator(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleModerator} {
		if err := RequireModerator(ok)(roleContext(t, &domain.Principal{ID: "u1", Role: role})); err != nil {
			t.Fatalf("%s should pass: %v", role, err)
		}
	}

	// A member principal carries no staff role.
	he, _ := RequireModerator(ok)(roleContext(t, &domain.Principal{ID: "m1", Audience: domain.AudienceMember})).(*echo.HTTPError)
	if he == nil || he.Code != http.StatusForbidden {
		t.Fatalf("member should get 403, got %v", he)
	}
}
