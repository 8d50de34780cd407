package services

import (
	"time"

	"event-reward-system/models"
	"event-reward-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceService owns the append-only daily check-in log.
type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

// CheckIn appends today's record for the user. A second check-in on the same
// calendar day is a 409; days are compared by [startOfDay, endOfDay], not by
// timestamp equality.
func (s *AttendanceService) CheckIn(userID string) (*models.AttendanceRecord, error) {
	if userID == "" {
		return nil, errUnauthorized("login required")
	}
	if err := validateID("user id", userID); err != nil {
		return nil, err
	}

	now := time.Now()
	var count int64
	err := s.DB.Model(&models.AttendanceRecord{}).
		Where("user_id = ? AND date >= ? AND date <= ?",
			userID, utils.StartOfDay(now), utils.EndOfDay(now)).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errConflict("already checked in today")
	}

	record := models.AttendanceRecord{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   now,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordsSince returns the user's check-ins with date >= since, ascending.
func (s *AttendanceService) RecordsSince(tx *gorm.DB, userID string, since time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := tx.Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
