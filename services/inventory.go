package services

import (
	"errors"

	"event-reward-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryService owns per-(user,item) quantities. All mutation goes through
// ApplyDelta so concurrent settlements targeting the same pair never lose an
// update: the increment happens in the store, not in Go.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// ApplyDelta upserts the (user,item) entry: a missing entry is created with
// amount = delta, an existing one gets delta added atomically via
// ON CONFLICT .. DO UPDATE. Returns the entry as stored after the write.
func (s *InventoryService) ApplyDelta(tx *gorm.DB, userID, itemID string, delta int) (*models.InventoryEntry, error) {
	entry := models.InventoryEntry{
		ID:     uuid.NewString(),
		UserID: userID,
		ItemID: itemID,
		Amount: delta,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount": gorm.Expr("amount + ?", delta),
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	var stored models.InventoryEntry
	if err := tx.First(&stored, "user_id = ? AND item_id = ?", userID, itemID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteIfZero removes the entry when a deduction drove it to exactly zero.
func (s *InventoryService) DeleteIfZero(tx *gorm.DB, entry *models.InventoryEntry) error {
	if entry == nil || entry.Amount != 0 {
		return nil
	}
	return tx.Delete(&models.InventoryEntry{}, "id = ?", entry.ID).Error
}

// FindOne returns the (user,item) entry or nil when the user owns none.
func (s *InventoryService) FindOne(tx *gorm.DB, userID, itemID string) (*models.InventoryEntry, error) {
	var entry models.InventoryEntry
	err := tx.First(&entry, "user_id = ? AND item_id = ?", userID, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
