package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Govind-619/PriceSphere/models"
)

// GormStore keeps the snapshot as one JSON row of the pricing_storages table
type GormStore struct {
	db  *gorm.DB
	key string
}

// NewGormStore stores under models.PricingStorageKey. The table must already
// be migrated, see config.InitDB.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, key: models.PricingStorageKey}
}

func (s *GormStore) Load(ctx context.Context) (*models.PricingSnapshot, error) {
	var row models.PricingStorage
	err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing state: %w", err)
	}
	return &row.State, nil
}

// Save upserts the row for the store's key
func (s *GormStore) Save(ctx context.Context, snapshot *models.PricingSnapshot) error {
	row := models.PricingStorage{Key: s.key, State: *snapshot}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save pricing state: %w", err)
	}
	return nil
}
