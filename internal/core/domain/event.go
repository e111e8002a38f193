package domain

import "time"

// Event is a parish calendar event. Events imported from the external
// calendar feed carry the feed's uid in ExternalUID and are upserted by it.
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TitleEs       string    `json:"title_es"`
	Description   string    `json:"description"`
	DescriptionEs string    `json:"description_es"`
	Location      string    `json:"location"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	ExternalUID   string    `json:"external_uid,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
