package models

import "time"

// AttendanceRecord is one daily check-in. Records are append-only; the
// evaluator reads them back by date range to test streaks.
type AttendanceRecord struct {
	ID     string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Date   time.Time `gorm:"index;not null" json:"date"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_logs"
}
