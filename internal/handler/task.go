package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/handler/dto"
	"github.com/taskhive/taskhive/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
// All routes sit behind the auth middleware; the caller identity comes from
// the request context, never from the request body.
type TaskHandler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}

	tasks, err := h.svc.List(r.Context(), callerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponses(tasks))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	task, err := h.svc.Create(r.Context(), callerID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("task_created", "task_id", task.ID, "user_id", callerID)

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Task ID is required")
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateTaskInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	task, err := h.svc.Update(r.Context(), callerID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("task_updated", "task_id", task.ID, "user_id", callerID)

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Task ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), callerID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("task_deleted", "task_id", id, "user_id", callerID)

	writeJSON(w, http.StatusOK, dto.DeleteTaskResponse{OK: true})
}

// caller pulls the authenticated user id out of the context. Behind the auth
// middleware it is always present; a miss means a routing mistake and gets
// the same uniform 401 the middleware would send.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerID := auth.UserIDFromContext(r.Context())
	if callerID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing bearer token")
		return "", false
	}
	return callerID, true
}

// handleServiceError maps task service errors to HTTP responses.
func (h *TaskHandler) handleServiceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidationError(w, ve.Violations)
	case errors.Is(err, service.ErrTaskNotFound):
		// Identical for missing ids and other users' ids.
		writeError(w, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
