package models

import "gorm.io/gorm"

// Migrate creates every table plus the partial unique index that makes
// reward grants exactly-once. The index cannot be expressed with struct tags,
// so it is applied with raw SQL; the syntax is shared by Postgres and SQLite,
// which keeps the test databases honest about the same invariant.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Event{},
		&EventGroup{},
		&Condition{},
		&Reward{},
		&RewardRequest{},
		&InventoryEntry{},
		&AttendanceRecord{},
		&Item{},
		&EventUser{},
	); err != nil {
		return err
	}

	// At most one granted request per (user, event); denied rows are unlimited.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_reward_requests_granted
		 ON event_reward_requests (user_id, event_id) WHERE status`,
	).Error
}
