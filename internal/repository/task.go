package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive/internal/model"
)

// ErrTaskNotFound is returned for tasks that do not exist for the given
// owner. Every owner-scoped query folds "missing" and "owned by someone
// else" into this one error so existence never leaks across accounts.
var ErrTaskNotFound = errors.New("task not found")

// CreateTask inserts a new task into the database.
func (r *Repository) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.OwnerID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// ListTasks retrieves all tasks owned by the given user in insertion order.
func (r *Repository) ListTasks(ctx context.Context, ownerID string) ([]*model.Task, error) {
	query := `
		SELECT id, title, description, status, owner_id, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetTaskForOwner retrieves a task by id, but only when it is owned by the
// given user. Any other outcome is ErrTaskNotFound.
func (r *Repository) GetTaskForOwner(ctx context.Context, id, ownerID string) (*model.Task, error) {
	query := `
		SELECT id, title, description, status, owner_id, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// UpdateTask persists a task's mutable fields. The owner id in the WHERE
// clause keeps the write inside the caller's account.
func (r *Repository) UpdateTask(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, status = $5, updated_at = $6
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Status,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// DeleteTask removes a task owned by the given user.
func (r *Repository) DeleteTask(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// scanTask scans a single row into a Task model.
func scanTask(row pgx.Row) (*model.Task, error) {
	var task model.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.OwnerID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
