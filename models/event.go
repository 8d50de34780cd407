package models

import "time"

// Event is the catalog aggregate root. Conditions and rewards hang off it by
// EventID and are reconciled together with the event row on every update.
type Event struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	GroupID   *string   `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"index" json:"slug"`
	BannerURL string    `json:"banner_url,omitempty"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Status    bool      `gorm:"not null;default:false" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InWindow reports whether now falls inside [StartDate, EndDate].
func (e *Event) InWindow(now time.Time) bool {
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}

// Visible reports whether the event is shown to non-admin callers: it must be
// active and inside its window. Hidden events answer 404, same as missing ones.
func (e *Event) Visible(now time.Time) bool {
	return e.Status && e.InWindow(now)
}

func (Event) TableName() string {
	return "events"
}
