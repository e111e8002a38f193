package domain

// Role is a staff role. Members carry no role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// ValidRole reports whether r is one of the predefined staff roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleModerator
}

// Audience is the token namespace a principal authenticates under. Staff and
// member tokens are signed with different secrets and are not interchangeable.
type Audience string

const (
	AudienceStaff  Audience = "staff"
	AudienceMember Audience = "member"
)

// Principal is the authenticated identity attached to a request after token
// verification. Role is empty for member principals.
type Principal struct {
	ID       string   `json:"id"`
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email"`
	Role     Role     `json:"role,omitempty"`
	Audience Audience `json:"-"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsModerator reports whether the principal holds at least the moderator
// role; admins pass too.
func (p *Principal) IsModerator() bool {
	return p != nil && (p.Role == RoleAdmin || p.Role == RoleModerator)
}

// CanModify reports whether the principal may mutate a resource owned by
// ownerID: admins always, everyone else only their own.
func (p *Principal) CanModify(ownerID string) bool {
	if p == nil {
		return false
	}
	return p.Role == RoleAdmin || (ownerID != "" && p.ID == ownerID)
}
