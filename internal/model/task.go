package model

import "time"

// TaskStatus represents the completion state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Task represents a single to-do item owned by exactly one user.
// OwnerID is established at creation and never changes.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
