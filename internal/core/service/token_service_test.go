package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

func staffPrincipal() *domain.Principal {
	return &domain.Principal{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleAdmin,
		Audience: domain.AudienceStaff,
	}
}

func memberPrincipal() *domain.Principal {
	return &domain.Principal{
		ID:       "m1",
		Email:    "bob@example.com",
		Audience: domain.AudienceMember,
	}
}

func TestTokenService_IssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("staff-secret", "member-secret")

	token, err := svc.Issue(staffPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token, domain.AudienceStaff)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.PrincipalID != "u1" {
		t.Fatalf("unexpected principal id: %s", claims.PrincipalID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.Audience != domain.AudienceStaff {
		t.Fatalf("unexpected audience: %s", claims.Audience)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issue %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("staff-secret", "member-secret")

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(staffPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just inside the 24h staff TTL: still valid.
	svc.now = func() time.Time { return issuedAt.Add(24*time.Hour - time.Second) }
	if _, err := svc.Verify(token, domain.AudienceStaff); err != nil {
		t.Fatalf("expected token still valid, got %v", err)
	}

	// One second past expiry: rejected as expired, not merely invalid.
	svc.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Second) }
	if _, err := svc.Verify(token, domain.AudienceStaff); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Verify_WrongNamespace(t *testing.T) {
	svc := NewTokenService("staff-secret", "member-secret")

	memberToken, err := svc.Issue(memberPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A well-signed member token must not verify in the staff namespace.
	if _, err := svc.Verify(memberToken, domain.AudienceStaff); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.Verify(memberToken, domain.AudienceMember); err != nil {
		t.Fatalf("member token rejected in its own namespace: %v", err)
	}
}

func TestTokenService_Verify_SameSecretDifferentType(t *testing.T) {
	// Even if both namespaces were misconfigured with one secret, the type
	// discriminator alone must block cross-namespace use.
	svc := NewTokenService("shared", "shared")

	memberToken, err := svc.Issue(memberPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(memberToken, domain.AudienceStaff); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("staff-secret", "member-secret")

	if _, err := svc.Verify("not-a-token", domain.AudienceStaff); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_TamperedSignature(t *testing.T) {
	svc := NewTokenService("staff-secret", "member-secret")
	other := NewTokenService("different-secret", "member-secret")

	token, err := other.Issue(staffPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token, domain.AudienceStaff); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
