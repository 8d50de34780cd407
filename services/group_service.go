package services

import (
	"errors"

	"event-reward-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupService organizes events into named groups.
type GroupService struct {
	DB     *gorm.DB
	Events *EventService
}

func NewGroupService(db *gorm.DB, events *EventService) *GroupService {
	return &GroupService{DB: db, Events: events}
}

// GroupDetail is the read aggregate: the group plus its member events.
type GroupDetail struct {
	Group  models.EventGroup `json:"group"`
	Events []models.Event    `json:"events"`
}

func (s *GroupService) Create(name string) (*models.EventGroup, error) {
	if name == "" {
		return nil, errBadRequest("group name is required")
	}

	group := models.EventGroup{ID: uuid.NewString(), Name: name}
	if err := s.DB.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *GroupService) List() ([]models.EventGroup, error) {
	var groups []models.EventGroup
	if err := s.DB.Order("created_at ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *GroupService) Get(id string) (*GroupDetail, error) {
	if err := validateID("group id", id); err != nil {
		return nil, err
	}

	var group models.EventGroup
	if err := s.DB.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound()
		}
		return nil, err
	}

	var events []models.Event
	if err := s.DB.Where("group_id = ?", id).Order("start_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	return &GroupDetail{Group: group, Events: events}, nil
}

func (s *GroupService) Update(id, name string) error {
	if err := validateID("group id", id); err != nil {
		return err
	}
	if name == "" {
		return errBadRequest("group name is required")
	}

	result := s.DB.Model(&models.EventGroup{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errNotFound()
	}
	return nil
}

// Delete removes the group; with cascade it also removes every member event
// and, through the event cascade, their conditions and rewards — all in one
// transaction. A missing group is a 404 like every other missing resource.
func (s *GroupService) Delete(id string, cascade bool) error {
	if err := validateID("group id", id); err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.EventGroup{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errNotFound()
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.EventGroup{}, "id = ?", id).Error; err != nil {
			return err
		}

		if !cascade {
			return nil
		}

		var events []models.Event
		if err := tx.Where("group_id = ?", id).Find(&events).Error; err != nil {
			return err
		}
		for _, event := range events {
			if err := s.Events.deleteInTx(tx, event.ID); err != nil {
				return err
			}
		}
		return nil
	})
}
