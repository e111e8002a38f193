package ports

import (
	"time"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	PrincipalID string
	Username    string
	Email       string
	Role        domain.Role
	Audience    domain.Audience
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenIssuer mints a signed token for a principal. The token namespace
// (secret and TTL) follows the principal's audience.
type TokenIssuer interface {
	Issue(p *domain.Principal) (string, error)
}

// TokenVerifier checks a raw token against one namespace. A token signed for
// the other namespace fails with domain.ErrTokenInvalid even when its
// signature is sound; expiry fails with domain.ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string, audience domain.Audience) (*TokenClaims, error)
}
