package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// MinPasswordLength is enforced before any hashing work is done.
const MinPasswordLength = 8

// HashPassword hashes a plaintext password with bcrypt. Each call salts
// independently, so two hashes of the same input differ.
func HashPassword(plain string) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", domain.ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash. A mismatch is a plain
// false, never an error — callers map it to invalid credentials without
// leaking which part failed.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
