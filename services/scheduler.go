package services

import (
	"log"
	"time"

	"event-reward-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweep deactivates events whose window has closed. Visibility
// rules already hide them from non-admin callers; the sweep keeps the status
// flag honest for operators browsing the full catalog.
func (s *EventService) StartExpirySweep() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			result := s.DB.Model(&models.Event{}).
				Where("status = ? AND end_date < ?", true, time.Now()).
				Update("status", false)
			if result.Error != nil {
				log.Printf("[SCHEDULER] DB error: %v", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("✅ Deactivated %d ended event(s)", result.RowsAffected)
			}
		}),
	)
}
