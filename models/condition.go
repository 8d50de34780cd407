package models

import "time"

// ConditionType is a closed enum. Adding a type means teaching the evaluator
// a new branch; unknown values are rejected at the catalog boundary.
type ConditionType string

const (
	// ConditionAttend requires an unbroken daily check-in streak of Quantity
	// days ending today. TargetID is unused.
	ConditionAttend ConditionType = "attend"
	// ConditionItem requires the claimant to hold at least Quantity of the
	// item named by TargetID.
	ConditionItem ConditionType = "item"
)

func (t ConditionType) Valid() bool {
	switch t {
	case ConditionAttend, ConditionItem:
		return true
	}
	return false
}

// Condition is one requirement of an event. TargetID and Quantity are
// pointers because their meaning depends on Type: attend conditions carry no
// target, and a nil Quantity is a validation error for both types.
type Condition struct {
	ID        string        `gorm:"primaryKey;type:uuid" json:"id"`
	EventID   string        `gorm:"type:uuid;index;not null" json:"event_id"`
	Type      ConditionType `gorm:"not null" json:"type"`
	TargetID  *string       `gorm:"type:uuid" json:"target_id,omitempty"`
	Quantity  *int          `json:"quantity,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Item *Item `gorm:"foreignKey:TargetID;references:ID" json:"item,omitempty"`
}

func (Condition) TableName() string {
	return "event_conditions"
}
