package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskhive/taskhive/internal/metrics"
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/validation"
)

// ErrTaskNotFound covers both truly missing tasks and tasks owned by another
// user. A caller probing foreign ids sees exactly what a missing id produces,
// never a distinguishing "forbidden".
var ErrTaskNotFound = errors.New("task not found")

// Task field limits.
const (
	maxTitleLength       = 500
	maxDescriptionLength = 4000
)

var taskStatusValues = []string{
	string(model.TaskStatusPending),
	string(model.TaskStatusCompleted),
}

// TaskStore is the task persistence needed by TaskService.
// *repository.Repository satisfies it; tests substitute an in-memory store.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	ListTasks(ctx context.Context, ownerID string) ([]*model.Task, error)
	GetTaskForOwner(ctx context.Context, id, ownerID string) (*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id, ownerID string) error
}

// TaskService handles owner-scoped task CRUD.
type TaskService struct {
	tasks   TaskStore
	metrics metrics.Recorder
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore, recorder metrics.Recorder) *TaskService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TaskService{
		tasks:   tasks,
		metrics: recorder,
	}
}

// CreateTaskInput defines input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
}

// UpdateTaskInput defines the patch for updating a task.
// Nil fields are left unchanged.
type UpdateTaskInput struct {
	ID          string
	Title       *string
	Description *string
	Status      *string
}

// List returns all tasks owned by the caller in insertion order.
func (s *TaskService) List(ctx context.Context, callerID string) ([]*model.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create validates the input and persists a task owned by the caller.
// Titles are trimmed before the non-empty check, so whitespace-only titles
// are rejected.
func (s *TaskService) Create(ctx context.Context, callerID string, input CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)

	violations := validation.Validate(
		validation.Field{Name: "title", Value: title, Required: true, MaxLen: maxTitleLength},
		validation.Field{Name: "description", Value: input.Description, MaxLen: maxDescriptionLength},
		validation.Field{Name: "status", Value: input.Status, OneOf: taskStatusValues},
	)
	if violations != nil {
		return nil, &ValidationError{Violations: violations}
	}

	status := model.TaskStatus(input.Status)
	if input.Status == "" {
		status = model.TaskStatusPending
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          ulid.Make().String(),
		Title:       title,
		Description: input.Description,
		Status:      status,
		OwnerID:     callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.IncTaskCreated()

	return task, nil
}

// Update applies the patch to a task owned by the caller and refreshes
// updated_at. Missing and foreign tasks fail identically with
// ErrTaskNotFound.
func (s *TaskService) Update(ctx context.Context, callerID string, input UpdateTaskInput) (*model.Task, error) {
	var fields []validation.Field
	var title string
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
		fields = append(fields, validation.Field{Name: "title", Value: title, Required: true, MaxLen: maxTitleLength})
	}
	if input.Description != nil {
		fields = append(fields, validation.Field{Name: "description", Value: *input.Description, MaxLen: maxDescriptionLength})
	}
	if input.Status != nil {
		fields = append(fields, validation.Field{Name: "status", Value: *input.Status, Required: true, OneOf: taskStatusValues})
	}
	if violations := validation.Validate(fields...); violations != nil {
		return nil, &ValidationError{Violations: violations}
	}

	task, err := s.tasks.GetTaskForOwner(ctx, input.ID, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if input.Title != nil {
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = model.TaskStatus(*input.Status)
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			// Deleted between lookup and write; same outcome for the caller.
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.metrics.IncTaskUpdated()

	return task, nil
}

// Delete removes a task owned by the caller. Missing and foreign tasks fail
// identically with ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.tasks.DeleteTask(ctx, id, callerID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.metrics.IncTaskDeleted()

	return nil
}
