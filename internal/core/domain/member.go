package domain

import "time"

// Member is a parish member account. Members authenticate in their own token
// namespace and manage only their own profile. Deactivation is soft: the
// record stays, authentication stops working.
type Member struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Language     string    `json:"language"` // "en" or "es"
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal returns the request identity for this member.
func (m *Member) Principal() *Principal {
	return &Principal{
		ID:       m.ID,
		Email:    m.Email,
		Audience: AudienceMember,
	}
}
