package api

import (
	"log/slog"
	"net/http"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/api/shared"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/platform/logger"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/ticket"
)

// TicketHandler serves the printable HTML ticket for a task.
type TicketHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(taskStore store.TaskStore, logger *slog.Logger) *TicketHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TicketHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "ticket_handler")),
	}
}

// GetTicket handles GET /tasks/{id}/ticket. Responds with the printable
// HTML document for the task.
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

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

	html, err := ticket.RenderTask(*task)
	if err != nil {
		log.Error("failed to render ticket",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to render ticket")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Error("failed to write ticket response", slog.String("error", err.Error()))
	}
}
