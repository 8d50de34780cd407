package models

import "time"

// Reward is an item-and-amount pair granted to a claimant's inventory when
// every condition of its event holds.
type Reward struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	EventID   string    `gorm:"type:uuid;index;not null" json:"event_id"`
	ItemID    string    `gorm:"type:uuid;not null" json:"item_id"`
	Amount    int       `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (Reward) TableName() string {
	return "event_rewards"
}
