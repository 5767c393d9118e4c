package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gotodo/internal/model"
)

// TodoChanges is a coalesce-style partial update: nil fields keep their
// stored value.
type TodoChanges struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *int
	IsCompleted *bool
}

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(todo *model.Todo) error {
	if err := r.db.Create(todo).Error; err != nil {
		return fmt.Errorf("create todo failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) ListByOwner(userID uint, limit, offset int) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list todos failed: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) GetByOwnerAndID(userID, todoID uint) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.
		Where("id = ? AND user_id = ? AND is_deleted = ?", todoID, userID, false).
		First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo failed: %w", err)
	}
	return &todo, nil
}

// UpdateByOwnerAndID applies the supplied fields in one conditional UPDATE
// scoped to the owning user and undeleted rows, so ownership and liveness are
// enforced by the statement itself. Returns (nil, nil) when no row matched.
func (r *TodoRepository) UpdateByOwnerAndID(userID, todoID uint, changes TodoChanges) (*model.Todo, error) {
	values := map[string]interface{}{}
	if changes.Title != nil {
		values["title"] = *changes.Title
	}
	if changes.Description != nil {
		values["description"] = *changes.Description
	}
	if changes.DueDate != nil {
		values["due_date"] = *changes.DueDate
	}
	if changes.Priority != nil {
		values["priority"] = *changes.Priority
	}
	if changes.IsCompleted != nil {
		values["is_completed"] = *changes.IsCompleted
	}
	values["updated_at"] = time.Now()

	result := r.db.Model(&model.Todo{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", todoID, userID, false).
		Updates(values)
	if result.Error != nil {
		return nil, fmt.Errorf("update todo failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByOwnerAndID(userID, todoID)
}

// SoftDeleteByOwnerAndID flips is_deleted on a live row owned by userID.
// Reports false when no such row exists, including a second delete of the
// same todo.
func (r *TodoRepository) SoftDeleteByOwnerAndID(userID, todoID uint) (bool, error) {
	result := r.db.Model(&model.Todo{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", todoID, userID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("soft delete todo failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
