package dto

import (
	"time"

	"github.com/taskhive/taskhive/internal/model"
)

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeleteTaskResponse acknowledges a successful delete.
type DeleteTaskResponse struct {
	OK bool `json:"ok"`
}

// ToTaskResponse converts a Task model to TaskResponse DTO.
func ToTaskResponse(task *model.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of Task models to response DTOs.
// Always returns a non-nil slice so an empty list serializes as [].
func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *ToTaskResponse(task)
	}
	return responses
}
