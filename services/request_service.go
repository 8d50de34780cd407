package services

import (
	"errors"
	"log"
	"time"

	"event-reward-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestService is the claim orchestrator. It validates the event window,
// rules out a prior grant, evaluates every condition, settles inventory
// deltas and appends the granted record — the settlement in one transaction.
// Every rejection past id validation is itself durably recorded as a denied
// request carrying the error message, then re-raised to the caller.
type RequestService struct {
	DB        *gorm.DB
	Evaluator *ConditionEvaluator
	Inventory *InventoryService
}

func NewRequestService(db *gorm.DB, evaluator *ConditionEvaluator, inventory *InventoryService) *RequestService {
	return &RequestService{DB: db, Evaluator: evaluator, Inventory: inventory}
}

// RequestReward runs one claim attempt for (eventID, userID).
func (s *RequestService) RequestReward(eventID, userID string) error {
	if userID == "" {
		return errUnauthorized("login required")
	}
	if err := validateID("event id", eventID); err != nil {
		return err
	}
	if err := validateID("user id", userID); err != nil {
		return err
	}

	if err := s.claim(eventID, userID); err != nil {
		s.recordDenied(eventID, userID, err)
		return err
	}
	return nil
}

func (s *RequestService) claim(eventID, userID string) error {
	var event models.Event
	if err := s.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound()
		}
		return err
	}
	if !event.Status {
		return errNotFound()
	}
	if !event.InWindow(time.Now()) {
		return errBadRequest("not in event window")
	}

	var granted int64
	err := s.DB.Model(&models.RewardRequest{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, true).
		Count(&granted).Error
	if err != nil {
		return err
	}
	if granted > 0 {
		return errConflict("reward already claimed")
	}

	var conditions []models.Condition
	if err := s.DB.Where("event_id = ?", eventID).Find(&conditions).Error; err != nil {
		return err
	}
	for i := range conditions {
		ok, err := s.Evaluator.Evaluate(s.DB, &conditions[i], userID)
		if err != nil {
			return err
		}
		if !ok {
			return errBadRequest("conditions not met")
		}
	}

	var rewards []models.Reward
	if err := s.DB.Where("event_id = ?", eventID).Find(&rewards).Error; err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// Consume prerequisite items first. The satisfied item condition above
		// guarantees the deduction cannot go negative within this transaction.
		for i := range conditions {
			c := &conditions[i]
			if c.Type != models.ConditionItem || c.TargetID == nil || c.Quantity == nil {
				continue
			}
			entry, err := s.Inventory.ApplyDelta(tx, userID, *c.TargetID, -*c.Quantity)
			if err != nil {
				return err
			}
			if err := s.Inventory.DeleteIfZero(tx, entry); err != nil {
				return err
			}
		}

		for _, r := range rewards {
			if _, err := s.Inventory.ApplyDelta(tx, userID, r.ItemID, r.Amount); err != nil {
				return err
			}
		}

		grant := models.RewardRequest{
			ID:      uuid.NewString(),
			UserID:  userID,
			EventID: eventID,
			Status:  true,
		}
		if err := tx.Create(&grant).Error; err != nil {
			// A concurrent claim won the partial unique index race; roll the
			// settlement back and report the same conflict as the pre-check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errConflict("reward already claimed")
			}
			return err
		}
		return nil
	})
}

// recordDenied appends the audit row for a failed attempt. The append is
// deliberately outside the settlement transaction: a denial must survive the
// rollback it reports on.
func (s *RequestService) recordDenied(eventID, userID string, cause error) {
	reason := cause.Error()
	var fe *fiber.Error
	if errors.As(cause, &fe) {
		reason = fe.Message
	}

	denied := models.RewardRequest{
		ID:      uuid.NewString(),
		UserID:  userID,
		EventID: eventID,
		Status:  false,
		Reason:  reason,
	}
	if err := s.DB.Create(&denied).Error; err != nil {
		log.Printf("[REQUEST] ⚠️ failed to record denied attempt (event=%s user=%s): %v", eventID, userID, err)
	}
}

// RequestQuery carries the list filters and ordering.
type RequestQuery struct {
	Status  *bool
	EventID string
	UserID  string
	SortBy  string // "createdAt" or "eventId"
	Order   string // "asc" or "desc"
}

// List returns matching audit records with user and event details resolved.
func (s *RequestService) List(q *RequestQuery) ([]models.RewardRequest, error) {
	query := s.DB.Model(&models.RewardRequest{}).
		Preload("User").
		Preload("Event")

	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.EventID != "" {
		if err := validateID("event id", q.EventID); err != nil {
			return nil, err
		}
		query = query.Where("event_id = ?", q.EventID)
	}
	if q.UserID != "" {
		if err := validateID("user id", q.UserID); err != nil {
			return nil, err
		}
		query = query.Where("user_id = ?", q.UserID)
	}

	column := "event_id"
	if q.SortBy == "createdAt" {
		column = "created_at"
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}

	var requests []models.RewardRequest
	if err := query.Order(column + " " + direction).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListForUser is List restricted to one user. Non-privileged callers may only
// ask about themselves.
func (s *RequestService) ListForUser(targetUserID, callerID, callerRole string, q *RequestQuery) ([]models.RewardRequest, error) {
	if err := validateID("user id", targetUserID); err != nil {
		return nil, err
	}
	if callerRole == models.RoleUser && callerID != targetUserID {
		return nil, errForbidden("cannot view another user's reward requests")
	}

	scoped := *q
	scoped.UserID = targetUserID
	return s.List(&scoped)
}
