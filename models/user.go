package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole values forwarded by the gateway in X-User-Role.
const (
	RoleUser     = "USER"
	RoleOperator = "OPERATOR"
	RoleAuditor  = "AUDITOR"
	RoleAdmin    = "ADMIN"
)

// EventUser is a local snapshot of user data needed for request listings.
// Owned solely by this service; populated by the sync worker from the auth
// service's user table. ExternalUserID is the auth service's UUID — the same
// id the gateway forwards in X-User-ID and the one reward requests store.
type EventUser struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"type:uuid;uniqueIndex;not null" json:"external_user_id"`
	Name           string    `gorm:"index;not null" json:"name"`
	Email          string    `json:"email,omitempty"`
	Role           string    `gorm:"not null;default:'USER'" json:"role"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (EventUser) TableName() string {
	return "event_users"
}
