package services

import (
	"errors"
	"time"

	"event-reward-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// EventService is the event/condition/reward catalog. Every mutation that
// touches more than one table runs inside a single transaction; reads resolve
// item and group references explicitly at the boundary via Preload.
type EventService struct {
	DB        *gorm.DB
	Items     *ItemService
	Evaluator *ConditionEvaluator
}

func NewEventService(db *gorm.DB, items *ItemService, evaluator *ConditionEvaluator) *EventService {
	return &EventService{DB: db, Items: items, Evaluator: evaluator}
}

type EventInput struct {
	GroupID   *string   `json:"group_id,omitempty"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    bool      `json:"status"`
}

// ConditionInput and RewardInput carry an optional ID: on update, entries
// without one are inserts, entries whose ID matches a stored row are updates
// (skipped when nothing changed), and stored rows missing from the submitted
// set are deletes.
type ConditionInput struct {
	ID       string               `json:"id,omitempty"`
	Type     models.ConditionType `json:"type"`
	TargetID *string              `json:"target_id,omitempty"`
	Quantity *int                 `json:"quantity,omitempty"`
}

type RewardInput struct {
	ID     string `json:"id,omitempty"`
	ItemID string `json:"item_id"`
	Amount int    `json:"amount"`
}

type EventPayload struct {
	Event      EventInput       `json:"event"`
	Conditions []ConditionInput `json:"conditions"`
	Rewards    []RewardInput    `json:"rewards"`
}

// EventDetail is the read aggregate: the event plus its group, rewards and
// conditions with item references resolved.
type EventDetail struct {
	Event      models.Event       `json:"event"`
	Group      *models.EventGroup `json:"group,omitempty"`
	Rewards    []models.Reward    `json:"rewards"`
	Conditions []models.Condition `json:"conditions"`
}

// validatePayload runs every pre-write check: well-formed references, a sane
// window, known condition types with resolvable targets, and existing reward
// items. Nothing is written if any of it fails.
func (s *EventService) validatePayload(p *EventPayload) error {
	if p.Event.Title == "" {
		return errBadRequest("event title is required")
	}
	if p.Event.EndDate.Before(p.Event.StartDate) {
		return errBadRequest("event end_date precedes start_date")
	}

	if p.Event.GroupID != nil {
		if err := validateID("group id", *p.Event.GroupID); err != nil {
			return err
		}
		var count int64
		if err := s.DB.Model(&models.EventGroup{}).Where("id = ?", *p.Event.GroupID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errNotFound()
		}
	}

	for i := range p.Conditions {
		c := &p.Conditions[i]
		if c.TargetID != nil {
			if err := validateID("condition target id", *c.TargetID); err != nil {
				return err
			}
		}
		if c.Type == models.ConditionAttend && (c.Quantity == nil || *c.Quantity < 1) {
			return errBadRequest("attend condition requires a quantity of at least 1")
		}
		if c.Type == models.ConditionItem && (c.Quantity == nil || *c.Quantity < 1) {
			return errBadRequest("item condition requires a quantity of at least 1")
		}
		if _, err := s.Evaluator.ValidateTarget(s.DB, c.Type, c.TargetID); err != nil {
			return err
		}
	}

	for _, r := range p.Rewards {
		if err := validateID("reward item id", r.ItemID); err != nil {
			return err
		}
		if r.Amount <= 0 {
			return errBadRequest("reward amount must be positive")
		}
		item, err := s.Items.FindByID(s.DB, r.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return errNotFound()
		}
	}

	return nil
}

// Create validates the whole aggregate, then inserts the event row plus all
// condition and reward rows atomically. Matching the original contract, it
// returns no aggregate — only the new event id for the response message.
func (s *EventService) Create(p *EventPayload) (string, error) {
	if err := s.validatePayload(p); err != nil {
		return "", err
	}

	eventID := uuid.NewString()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		event := models.Event{
			ID:        eventID,
			GroupID:   p.Event.GroupID,
			Title:     p.Event.Title,
			Slug:      slug.Make(p.Event.Title),
			StartDate: p.Event.StartDate,
			EndDate:   p.Event.EndDate,
			Status:    p.Event.Status,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		for _, c := range p.Conditions {
			row := models.Condition{
				ID:       uuid.NewString(),
				EventID:  eventID,
				Type:     c.Type,
				TargetID: c.TargetID,
				Quantity: c.Quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, r := range p.Rewards {
			row := models.Reward{
				ID:      uuid.NewString(),
				EventID: eventID,
				ItemID:  r.ItemID,
				Amount:  r.Amount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return eventID, nil
}

// List returns all events for admins and only visible (active, in-window)
// events for everyone else.
func (s *EventService) List(role string) ([]models.Event, error) {
	query := s.DB.Model(&models.Event{})
	if role != models.RoleAdmin {
		now := time.Now()
		query = query.Where("status = ? AND start_date <= ? AND end_date >= ?", true, now, now)
	}

	var events []models.Event
	if err := query.Order("start_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Get returns the full aggregate. Non-admin callers asking for an inactive or
// out-of-window event get the same 404 as for a missing one; hiding the event
// reveals nothing about its existence.
func (s *EventService) Get(id, role string) (*EventDetail, error) {
	if err := validateID("event id", id); err != nil {
		return nil, err
	}

	var event models.Event
	if err := s.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound()
		}
		return nil, err
	}
	if role != models.RoleAdmin && !event.Visible(time.Now()) {
		return nil, errNotFound()
	}

	detail := EventDetail{Event: event}

	if event.GroupID != nil {
		var group models.EventGroup
		if err := s.DB.First(&group, "id = ?", *event.GroupID).Error; err == nil {
			detail.Group = &group
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := s.DB.Preload("Item").Where("event_id = ?", id).Find(&detail.Rewards).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Item").Where("event_id = ?", id).Find(&detail.Conditions).Error; err != nil {
		return nil, err
	}

	return &detail, nil
}

// Update replaces the event row and reconciles the stored condition and
// reward sets against the submitted ones with a three-way diff, all in one
// transaction. No-op updates issue no write.
func (s *EventService) Update(id string, p *EventPayload) error {
	if err := validateID("event id", id); err != nil {
		return err
	}

	var event models.Event
	if err := s.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound()
		}
		return err
	}

	if err := s.validatePayload(p); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var beforeRewards []models.Reward
		if err := tx.Where("event_id = ?", id).Find(&beforeRewards).Error; err != nil {
			return err
		}
		var beforeConditions []models.Condition
		if err := tx.Where("event_id = ?", id).Find(&beforeConditions).Error; err != nil {
			return err
		}

		event.GroupID = p.Event.GroupID
		event.Title = p.Event.Title
		event.Slug = slug.Make(p.Event.Title)
		event.StartDate = p.Event.StartDate
		event.EndDate = p.Event.EndDate
		event.Status = p.Event.Status
		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		rd := diffRewards(beforeRewards, p.Rewards)
		for _, in := range rd.inserts {
			row := models.Reward{ID: uuid.NewString(), EventID: id, ItemID: in.ItemID, Amount: in.Amount}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, row := range rd.updates {
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}
		if len(rd.deletes) > 0 {
			if err := tx.Delete(&models.Reward{}, "id IN ?", rd.deletes).Error; err != nil {
				return err
			}
		}

		cd := diffConditions(beforeConditions, p.Conditions)
		for _, in := range cd.inserts {
			row := models.Condition{ID: uuid.NewString(), EventID: id, Type: in.Type, TargetID: in.TargetID, Quantity: in.Quantity}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, row := range cd.updates {
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}
		if len(cd.deletes) > 0 {
			if err := tx.Delete(&models.Condition{}, "id IN ?", cd.deletes).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the event and cascades to its conditions and rewards.
func (s *EventService) Delete(id string) error {
	if err := validateID("event id", id); err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Event{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errNotFound()
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.deleteInTx(tx, id)
	})
}

// deleteInTx performs the cascade inside an already-open transaction so the
// group service can fold event deletes into its own cascade.
func (s *EventService) deleteInTx(tx *gorm.DB, id string) error {
	if err := tx.Delete(&models.Event{}, "id = ?", id).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.Condition{}, "event_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Reward{}, "event_id = ?", id).Error
}

// SetBannerURL records the uploaded banner asset on the event.
func (s *EventService) SetBannerURL(id, url string) error {
	if err := validateID("event id", id); err != nil {
		return err
	}

	result := s.DB.Model(&models.Event{}).Where("id = ?", id).Update("banner_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errNotFound()
	}
	return nil
}
