package services

import (
	"fmt"
	"time"

	"event-reward-system/models"
	"event-reward-system/utils"

	"gorm.io/gorm"
)

// ConditionEvaluator decides whether a single condition holds for a user.
// All conditions of an event are AND-combined by the orchestrator; the
// evaluator itself is stateless and reads through the attendance log, the
// inventory ledger and the item catalog.
type ConditionEvaluator struct {
	Attendance *AttendanceService
	Inventory  *InventoryService
	Items      *ItemService
}

func NewConditionEvaluator(attendance *AttendanceService, inventory *InventoryService, items *ItemService) *ConditionEvaluator {
	return &ConditionEvaluator{
		Attendance: attendance,
		Inventory:  inventory,
		Items:      items,
	}
}

// Evaluate returns whether the condition is satisfied for the user. An
// unsatisfied condition is (false, nil); errors are reserved for malformed
// conditions and store failures.
func (e *ConditionEvaluator) Evaluate(tx *gorm.DB, cond *models.Condition, userID string) (bool, error) {
	switch cond.Type {
	case models.ConditionAttend:
		return e.evaluateAttend(tx, cond, userID)
	case models.ConditionItem:
		return e.evaluateItem(tx, cond, userID)
	default:
		return false, errBadRequest(fmt.Sprintf("unknown condition type: %s", cond.Type))
	}
}

// evaluateAttend checks a streak of Quantity consecutive calendar days ending
// today. Timestamps are normalized to start-of-day; any missing day in the
// window fails the whole condition.
func (e *ConditionEvaluator) evaluateAttend(tx *gorm.DB, cond *models.Condition, userID string) (bool, error) {
	if cond.Quantity == nil || *cond.Quantity < 1 {
		return false, errBadRequest("attend condition requires a quantity of at least 1")
	}
	days := *cond.Quantity

	today := utils.StartOfDay(time.Now())
	windowStart := today.AddDate(0, 0, -(days - 1))

	records, err := e.Attendance.RecordsSince(tx, userID, windowStart)
	if err != nil {
		return false, err
	}

	// Key by calendar date, not time.Time: the store may hand timestamps
	// back in UTC, and map equality on time.Time compares locations too.
	attended := make(map[string]bool, len(records))
	for _, r := range records {
		attended[r.Date.In(today.Location()).Format(time.DateOnly)] = true
	}

	for day := windowStart; !day.After(today); day = day.AddDate(0, 0, 1) {
		if !attended[day.Format(time.DateOnly)] {
			return false, nil
		}
	}
	return true, nil
}

// evaluateItem checks that the user owns at least Quantity of the target item.
// A missing inventory entry is an unsatisfied condition, not an error.
func (e *ConditionEvaluator) evaluateItem(tx *gorm.DB, cond *models.Condition, userID string) (bool, error) {
	if cond.TargetID == nil {
		return false, errBadRequest("item condition requires a target item")
	}
	if cond.Quantity == nil || *cond.Quantity < 1 {
		return false, errBadRequest("item condition requires a quantity of at least 1")
	}

	entry, err := e.Inventory.FindOne(tx, userID, *cond.TargetID)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, nil
	}
	return entry.Amount >= *cond.Quantity, nil
}

// ValidateTarget confirms a condition's target reference resolves before the
// condition is stored or served. Attend conditions have no target to resolve;
// item conditions must point at an existing catalog item.
func (e *ConditionEvaluator) ValidateTarget(tx *gorm.DB, condType models.ConditionType, targetID *string) (*models.Item, error) {
	switch condType {
	case models.ConditionAttend:
		return nil, nil
	case models.ConditionItem:
		if targetID == nil {
			return nil, errBadRequest("item condition requires a target item")
		}
		item, err := e.Items.FindByID(tx, *targetID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, errNotFound()
		}
		return item, nil
	default:
		return nil, errBadRequest(fmt.Sprintf("unknown condition type: %s", condType))
	}
}
