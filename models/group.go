package models

import "time"

// EventGroup organizes events under a name. Deleting a group with the cascade
// flag removes its member events too.
type EventGroup struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EventGroup) TableName() string {
	return "event_groups"
}
