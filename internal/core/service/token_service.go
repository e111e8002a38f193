package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

const (
	staffTokenTTL  = 24 * time.Hour
	memberTokenTTL = 30 * 24 * time.Hour
)

// tokenClaims is the on-wire JWT payload. TokenType is the namespace
// discriminator; a staff token never verifies as a member token and vice
// versa, independent of the per-namespace secrets.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"type"`
}

// TokenService issues and verifies HS256 bearer tokens for the two
// namespaces. Tokens are stateless: revocation before expiry is not
// supported, a token stays valid until its embedded expiry.
type TokenService struct {
	staffSecret  []byte
	memberSecret []byte
	now          func() time.Time
}

// NewTokenService builds a TokenService over the two namespace secrets.
// Config guarantees the secrets are present and distinct.
func NewTokenService(staffSecret, memberSecret string) *TokenService {
	return &TokenService{
		staffSecret:  []byte(staffSecret),
		memberSecret: []byte(memberSecret),
		now:          time.Now,
	}
}

// Issue mints a token for p in its audience's namespace. Staff tokens live
// 24h, member tokens 30d.
func (s *TokenService) Issue(p *domain.Principal) (string, error) {
	secret, ttl, err := s.namespace(p.Audience)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  p.Username,
		Email:     p.Email,
		Role:      string(p.Role),
		TokenType: string(p.Audience),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses and validates token against the given namespace. Expired
// tokens report domain.ErrTokenExpired; everything else that fails —
// bad signature, wrong algorithm, wrong namespace — reports
// domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string, audience domain.Audience) (*ports.TokenClaims, error) {
	secret, _, err := s.namespace(audience)
	if err != nil {
		return nil, err
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.TokenType != string(audience) {
		return nil, domain.ErrTokenInvalid
	}

	out := &ports.TokenClaims{
		PrincipalID: claims.Subject,
		Username:    claims.Username,
		Email:       claims.Email,
		Role:        domain.Role(claims.Role),
		Audience:    audience,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (s *TokenService) namespace(audience domain.Audience) ([]byte, time.Duration, error) {
	switch audience {
	case domain.AudienceStaff:
		return s.staffSecret, staffTokenTTL, nil
	case domain.AudienceMember:
		return s.memberSecret, memberTokenTTL, nil
	default:
		return nil, 0, domain.ErrTokenInvalid
	}
}
