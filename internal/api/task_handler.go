package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/api/shared"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/platform/logger"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"
)

// TaskHandler handles the task CRUD API requests.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
// If logger is nil, a default logger will be used.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks. Tasks come back newest first.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := req.toDomain()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id}. The payload carries the full task
// representation; the store bumps updated_at.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	var req TaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := req.toDomain()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}
	task.ID = id

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}. Responds 204 with no body.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
