package services

import (
	"errors"

	"event-reward-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemService is the item catalog: condition targets, reward items and
// inventory entries all reference rows it owns.
type ItemService struct {
	DB *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{DB: db}
}

// FindByID returns the item or nil when it does not exist. Absence is a
// decision for the caller (the evaluator fails a target check, the catalog
// rejects a create), not an error here.
func (s *ItemService) FindByID(tx *gorm.DB, id string) (*models.Item, error) {
	var item models.Item
	err := tx.First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ItemService) Create(name, description string) (*models.Item, error) {
	if name == "" {
		return nil, errBadRequest("item name is required")
	}

	item := models.Item{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ItemService) List() ([]models.Item, error) {
	var items []models.Item
	if err := s.DB.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
