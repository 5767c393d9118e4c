package model

import "time"

// Todo rows are never removed by user-facing operations; Delete flips
// IsDeleted and every query filters on it.
type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	Priority    int        `gorm:"not null;default:0" json:"priority"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
