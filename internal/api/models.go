package api

import (
	"time"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name            string `json:"name"             validate:"required,max=256"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// TokenResponse defines the successful response for the login endpoint.
// The field names are part of the wire contract with the browser client.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TaskRequest defines the payload for the task create and update endpoints.
// Both take the full task representation; the server owns id and timestamps.
type TaskRequest struct {
	Title       string     `json:"title"                  validate:"required,max=200"`
	Description string     `json:"description"            validate:"required"`
	DueDatetime *time.Time `json:"due_datetime,omitempty"`
	Status      string     `json:"status"                 validate:"required,oneof=pending in_progress completed cancelled delayed"`
	Priority    string     `json:"priority"               validate:"required,oneof=low medium high urgent"`
	Category    string     `json:"category"               validate:"required,oneof=personal work family health finance other"`
	AssigneeID  *int64     `json:"assigneeId,omitempty"`
}

// toDomain builds an unsaved domain task from the request payload.
func (req *TaskRequest) toDomain() (*domain.Task, error) {
	return domain.NewTask(
		req.Title,
		req.Description,
		req.DueDatetime,
		domain.TaskStatus(req.Status),
		domain.TaskPriority(req.Priority),
		domain.TaskCategory(req.Category),
		req.AssigneeID,
	)
}
