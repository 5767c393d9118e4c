package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gotodo/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count user by username failed: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) UpdatePassword(username, passwordHash string) error {
	result := r.db.Model(&model.User{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("update password failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update password failed: user %q not found", username)
	}
	return nil
}

// DeleteByUsername hard-deletes a user row. Administrative and test cleanup
// only; no route reaches this.
func (r *UserRepository) DeleteByUsername(username string) error {
	if err := r.db.Where("username = ?", username).Delete(&model.User{}).Error; err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	return nil
}
