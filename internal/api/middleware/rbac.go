package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// RequireAdmin admits admins only. A missing principal is 401; a principal
// with the wrong role is 403.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(next, func(p *domain.Principal) bool { return p.IsAdmin() })
}

// RequireModerator admits admins and moderators.
func RequireModerator(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(next, (*domain.Principal).IsModerator)
}

func requireRole(next echo.HandlerFunc, allowed func(*domain.Principal) bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := CurrentPrincipal(c)
		if p == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
		}
		if !allowed(p) {
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
		return next(c)
	}
}
