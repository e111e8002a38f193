package domain

import (
	"fmt"
	"time"
)

// Bulletin is a weekly parish bulletin backed by an uploaded file. The
// single-active invariant holds per week: activating a bulletin deactivates
// the other bulletins sharing its week key.
type Bulletin struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	TitleEs   string    `json:"title_es"`
	Date      time.Time `json:"date"`     // the Sunday (or service day) the bulletin covers
	WeekKey   string    `json:"week_key"` // partition key, derived from Date
	FileKey   string    `json:"-"`        // object storage key
	FileName  string    `json:"file_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeekKeyOf derives the activation partition key for a bulletin date,
// e.g. "2026-W35". Uses ISO week numbering so year boundaries stay stable.
func WeekKeyOf(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
