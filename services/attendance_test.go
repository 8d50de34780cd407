package services

import (
	"testing"
	"time"

	"event-reward-system/models"
	"event-reward-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIn(t *testing.T) {
	env := newTestEnv(t)
	userID := "11111111-1111-1111-1111-111111111111"

	record, err := env.attendance.CheckIn(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, record.UserID)

	// Same calendar day: conflict.
	_, err = env.attendance.CheckIn(userID)
	requireStatus(t, err, fiber.StatusConflict)

	// A different user is unaffected.
	_, err = env.attendance.CheckIn("22222222-2222-2222-2222-222222222222")
	require.NoError(t, err)
}

func TestCheckIn_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.CheckIn("")
	requireStatus(t, err, fiber.StatusUnauthorized)

	_, err = env.attendance.CheckIn("not-a-uuid")
	requireStatus(t, err, fiber.StatusBadRequest)
}

func TestCheckIn_YesterdayDoesNotBlockToday(t *testing.T) {
	env := newTestEnv(t)
	userID := "11111111-1111-1111-1111-111111111111"

	yesterday := models.AttendanceRecord{
		ID:     uuid.NewString(),
		UserID: userID,
		// Late last night, just before midnight.
		Date: utils.StartOfDay(time.Now()).Add(-time.Minute),
	}
	require.NoError(t, env.db.Create(&yesterday).Error)

	_, err := env.attendance.CheckIn(userID)
	require.NoError(t, err)
}

func TestRecordsSince_SortedAscending(t *testing.T) {
	env := newTestEnv(t)
	userID := "11111111-1111-1111-1111-111111111111"
	env.seedAttendance(t, userID, 1, 4, 2)

	since := utils.StartOfDay(time.Now()).AddDate(0, 0, -3)
	records, err := env.attendance.RecordsSince(env.db, userID, since)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Date.Before(records[1].Date))
}
