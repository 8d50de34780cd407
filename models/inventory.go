package models

import "time"

// InventoryEntry is the quantity of one item owned by one user. Entries are
// created on first grant, mutated with atomic signed deltas, and removed when
// a deduction drives the amount to exactly zero.
type InventoryEntry struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_inventory_user_item" json:"user_id"`
	ItemID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_inventory_user_item" json:"item_id"`
	Amount    int       `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InventoryEntry) TableName() string {
	return "inventory_entries"
}
