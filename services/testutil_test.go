package services

import (
	"fmt"
	"testing"
	"time"

	"event-reward-system/models"
	"event-reward-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db         *gorm.DB
	items      *ItemService
	inventory  *InventoryService
	attendance *AttendanceService
	evaluator  *ConditionEvaluator
	events     *EventService
	groups     *GroupService
	requests   *RequestService
}

// newTestEnv wires the full service graph over an in-memory database that
// carries the same schema and unique indexes as production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on one database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	items := NewItemService(db)
	inventory := NewInventoryService(db)
	attendance := NewAttendanceService(db)
	evaluator := NewConditionEvaluator(attendance, inventory, items)
	events := NewEventService(db, items, evaluator)

	return &testEnv{
		db:         db,
		items:      items,
		inventory:  inventory,
		attendance: attendance,
		evaluator:  evaluator,
		events:     events,
		groups:     NewGroupService(db, events),
		requests:   NewRequestService(db, evaluator, inventory),
	}
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, code, fe.Code)
}

func (env *testEnv) createItem(t *testing.T, name string) *models.Item {
	t.Helper()
	item, err := env.items.Create(name, "")
	require.NoError(t, err)
	return item
}

// seedAttendance inserts one check-in per given days-ago offset (0 = today),
// mid-morning so streak checks exercise start-of-day normalization.
func (env *testEnv) seedAttendance(t *testing.T, userID string, daysAgo ...int) {
	t.Helper()
	for _, d := range daysAgo {
		record := models.AttendanceRecord{
			ID:     uuid.NewString(),
			UserID: userID,
			Date:   utils.StartOfDay(time.Now()).AddDate(0, 0, -d).Add(10 * time.Hour),
		}
		require.NoError(t, env.db.Create(&record).Error)
	}
}

// seedInventory puts amount of itemID into userID's inventory directly.
func (env *testEnv) seedInventory(t *testing.T, userID, itemID string, amount int) {
	t.Helper()
	entry := models.InventoryEntry{
		ID:     uuid.NewString(),
		UserID: userID,
		ItemID: itemID,
		Amount: amount,
	}
	require.NoError(t, env.db.Create(&entry).Error)
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

// openEventWindow is a window that contains time.Now().
func openEventWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

// createEvent stores an event through the catalog and returns its id.
func (env *testEnv) createEvent(t *testing.T, p *EventPayload) string {
	t.Helper()
	id, err := env.events.Create(p)
	require.NoError(t, err)
	return id
}
