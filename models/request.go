package models

import "time"

// RewardRequest is the immutable audit record of one claim attempt.
// Rows are only ever appended: a granted attempt writes Status=true, every
// rejected attempt writes Status=false with the triggering error as Reason.
// The partial unique index created in Migrate guarantees at most one granted
// row per (user, event) pair even under concurrent claims.
type RewardRequest struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID   string    `gorm:"type:uuid;index;not null" json:"event_id"`
	Status    bool      `gorm:"not null;default:false" json:"status"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// No FK constraints: denied attempts are recorded even when the event id
	// does not exist, and the user mirror may lag behind the auth service.
	User  *EventUser `gorm:"foreignKey:UserID;references:ExternalUserID;constraint:-" json:"user,omitempty"`
	Event *Event     `gorm:"foreignKey:EventID;constraint:-" json:"event,omitempty"`
}

func (RewardRequest) TableName() string {
	return "event_reward_requests"
}
