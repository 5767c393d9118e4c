package model

import "time"

const (
	ActivityTodoCreated = "todo.created"
	ActivityTodoUpdated = "todo.updated"
	ActivityTodoDeleted = "todo.deleted"
)

// Activity is an audit record of a todo lifecycle event. Rows are written
// asynchronously by the activity worker, never on the request path.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TodoID    uint      `gorm:"not null;index" json:"todo_id"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

func (Activity) TableName() string {
	return "activity_log"
}
