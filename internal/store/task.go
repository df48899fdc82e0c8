package store

import (
	"context"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID.
	// The store sets created_at and updated_at to the current instant.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves all tasks ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Task, error)

	// Update replaces an existing task's mutable fields with the given
	// values and bumps updated_at. The updated_at timestamp increases
	// monotonically across successive updates of the same task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}
