package domain

import "time"

// Announcement is a bilingual site-wide notice. At most one announcement is
// active at any time; activation deactivates every sibling first.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	TitleEs   string    `json:"title_es"`
	Content   string    `json:"content"`
	ContentEs string    `json:"content_es"`
	Priority  int       `json:"priority"`
	IsActive  bool      `json:"is_active"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
