package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gotodo/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(entry *model.Activity) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create activity entry failed: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByUser(userID uint, limit int) ([]model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var entries []model.Activity
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list activity failed: %w", err)
	}
	return entries, nil
}
