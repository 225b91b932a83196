package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/taskhive/internal/metrics"
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/service"
	"github.com/taskhive/taskhive/internal/testutil"
)

func newTaskService(t *testing.T) (*service.TaskService, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	return service.NewTaskService(store, metrics.NewNoop()), store
}

func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	task, err := svc.Create(context.Background(), "owner-1", service.CreateTaskInput{
		Title:       "Buy groceries",
		Description: "milk, eggs",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if task.ID == "" {
		t.Error("created task should have an id")
	}
	if task.Title != "Buy groceries" {
		t.Errorf("Title = %q", task.Title)
	}
	if task.Status != model.TaskStatusPending {
		t.Errorf("Status = %q, want default %q", task.Status, model.TaskStatusPending)
	}
	if task.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %q, want %q", task.OwnerID, "owner-1")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestTaskService_Create_TrimsTitle(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	task, err := svc.Create(context.Background(), "owner-1", service.CreateTaskInput{
		Title: "  padded title  ",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if task.Title != "padded title" {
		t.Errorf("Title = %q, want trimmed", task.Title)
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	tests := []struct {
		name  string
		input service.CreateTaskInput
	}{
		{"empty title", service.CreateTaskInput{Title: ""}},
		{"whitespace title", service.CreateTaskInput{Title: "   \t  "}},
		{"unknown status", service.CreateTaskInput{Title: "ok", Status: "archived"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Create(context.Background(), "owner-1", tt.input)

			var ve *service.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Create(%+v) = %v, want ValidationError", tt.input, err)
			}
		})
	}
}

func TestTaskService_Create_ExplicitStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	task, err := svc.Create(context.Background(), "owner-1", service.CreateTaskInput{
		Title:  "done already",
		Status: "completed",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if task.Status != model.TaskStatusCompleted {
		t.Errorf("Status = %q, want %q", task.Status, model.TaskStatusCompleted)
	}
}

func TestTaskService_List_ScopedToOwner(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "first"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "second"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "owner-2", service.CreateTaskInput{Title: "foreign"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tasks, err := svc.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("List returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Error("List should preserve creation order")
	}
	for _, task := range tasks {
		if task.OwnerID != "owner-1" {
			t.Errorf("leaked task owned by %q", task.OwnerID)
		}
	}
}

func TestTaskService_List_Empty(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	tasks, err := svc.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("List on a fresh store returned %d tasks", len(tasks))
	}
}

func TestTaskService_Update(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{
		Title:       "original",
		Description: "before",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, "owner-1", service.UpdateTaskInput{
		ID:     task.ID,
		Status: strPtr("completed"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Status != model.TaskStatusCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, model.TaskStatusCompleted)
	}
	// Untouched fields survive a partial update.
	if updated.Title != "original" || updated.Description != "before" {
		t.Errorf("partial update clobbered other fields: %+v", updated)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) && !updated.UpdatedAt.Equal(task.UpdatedAt) {
		t.Error("UpdatedAt should not move backwards")
	}
}

func TestTaskService_Update_AllFields(t *testing.T) {
	t.Parallel()

	svc, store := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "original"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, "owner-1", service.UpdateTaskInput{
		ID:          task.ID,
		Title:       strPtr("  renamed  "),
		Description: strPtr("now with notes"),
		Status:      strPtr("completed"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "renamed" {
		t.Errorf("Title = %q, want trimmed %q", updated.Title, "renamed")
	}
	if updated.Description != "now with notes" {
		t.Errorf("Description = %q", updated.Description)
	}
	if updated.Status != model.TaskStatusCompleted {
		t.Errorf("Status = %q", updated.Status)
	}

	stored, err := store.GetTaskForOwner(ctx, task.ID, "owner-1")
	if err != nil {
		t.Fatalf("task missing after update: %v", err)
	}
	if stored.Title != "renamed" {
		t.Errorf("update not persisted, stored Title = %q", stored.Title)
	}
}

func TestTaskService_Update_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "original"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name  string
		input service.UpdateTaskInput
	}{
		{"whitespace title", service.UpdateTaskInput{ID: task.ID, Title: strPtr("   ")}},
		{"unknown status", service.UpdateTaskInput{ID: task.ID, Status: strPtr("archived")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Update(ctx, "owner-1", tt.input)

			var ve *service.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Update(%+v) = %v, want ValidationError", tt.input, err)
			}
		})
	}
}

func TestTaskService_Update_NotFoundAndForeignIdentical(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "mine"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A different user updating this task gets the same error as a missing id.
	_, foreign := svc.Update(ctx, "owner-2", service.UpdateTaskInput{ID: task.ID, Status: strPtr("completed")})
	_, missing := svc.Update(ctx, "owner-2", service.UpdateTaskInput{ID: "no-such-id", Status: strPtr("completed")})

	if !errors.Is(foreign, service.ErrTaskNotFound) {
		t.Errorf("foreign task update = %v, want ErrTaskNotFound", foreign)
	}
	if !errors.Is(missing, service.ErrTaskNotFound) {
		t.Errorf("missing task update = %v, want ErrTaskNotFound", missing)
	}
	if foreign.Error() != missing.Error() {
		t.Errorf("foreign and missing must be indistinguishable: %q vs %q", foreign, missing)
	}

	// The task is untouched.
	got, err := svc.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got[0].Status != model.TaskStatusPending {
		t.Error("foreign update must not mutate the task")
	}
}

func TestTaskService_Delete(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "ephemeral"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, "owner-1", task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	tasks, err := svc.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("task still listed after delete")
	}

	// Second delete behaves like a missing id.
	if err := svc.Delete(ctx, "owner-1", task.ID); !errors.Is(err, service.ErrTaskNotFound) {
		t.Errorf("repeat delete = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskService_Delete_NotFoundAndForeignIdentical(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "mine"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	foreign := svc.Delete(ctx, "owner-2", task.ID)
	missing := svc.Delete(ctx, "owner-2", "no-such-id")

	if !errors.Is(foreign, service.ErrTaskNotFound) || !errors.Is(missing, service.ErrTaskNotFound) {
		t.Errorf("foreign = %v, missing = %v, both want ErrTaskNotFound", foreign, missing)
	}

	// Owner still has the task.
	tasks, err := svc.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Error("foreign delete must not remove the task")
	}
}

func TestTaskService_Metrics(t *testing.T) {
	t.Parallel()

	store := testutil.NewMemStore()
	recorder := metrics.NewInMemory()
	svc := service.NewTaskService(store, recorder)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", service.CreateTaskInput{Title: "counted"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Update(ctx, "owner-1", service.UpdateTaskInput{ID: task.ID, Status: strPtr("completed")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := svc.Delete(ctx, "owner-1", task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	snap := recorder.Snapshot()
	if snap.TasksCreated != 1 || snap.TasksUpdated != 1 || snap.TasksDeleted != 1 {
		t.Errorf("snapshot = %+v, want one of each", snap)
	}
}
