package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// principalKey is the echo context key the auth middleware stores the
// resolved principal under.
const principalKey = "principal"

// PrincipalSource resolves a verified token subject to a live principal.
// Both the staff and member services satisfy it.
type PrincipalSource interface {
	PrincipalByID(ctx context.Context, id string) (*domain.Principal, error)
}

// Authenticate validates the bearer token for one namespace and attaches the
// live principal to the request context. Tokens are read from the
// Authorization header first, then the "token" cookie.
func Authenticate(tokens ports.TokenVerifier, principals PrincipalSource, audience domain.Audience) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := extractToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token")
			}

			p, err := resolvePrincipal(c, tokens, principals, raw, audience)
			if err != nil {
				return err
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// AuthenticateOptional attaches a principal when a valid token is present and
// falls through anonymously on any failure. Handlers behind it must tolerate
// a nil principal.
func AuthenticateOptional(tokens ports.TokenVerifier, principals PrincipalSource, audience domain.Audience) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := extractToken(c); ok {
				if p, err := resolvePrincipal(c, tokens, principals, raw, audience); err == nil {
					c.Set(principalKey, p)
				}
			}
			return next(c)
		}
	}
}

func resolvePrincipal(c echo.Context, tokens ports.TokenVerifier, principals PrincipalSource, raw string, audience domain.Audience) (*domain.Principal, error) {
	claims, err := tokens.Verify(raw, audience)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	p, err := principals.PrincipalByID(c.Request().Context(), claims.PrincipalID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return p, nil
}

// extractToken pulls the raw token from the Authorization header, falling
// back to the "token" cookie set for browser sessions.
func extractToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}

	cookie, err := c.Cookie("token")
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// CurrentPrincipal returns the principal attached by Authenticate, or nil
// when the request is anonymous.
func CurrentPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}
