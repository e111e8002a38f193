package domain

import "time"

// Subscriber is an email-list entry. UnsubscribeToken is the opaque handle
// embedded in mailing links; it is the only way to remove a subscription
// without admin access.
type Subscriber struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Language         string    `json:"language"`
	UnsubscribeToken string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}
