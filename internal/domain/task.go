package domain

import (
	"errors"
	"time"
)

// Task validation errors.
var (
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrEmptyDescription = errors.New("task description cannot be empty")
	ErrTitleTooLong     = errors.New("task title must be at most 200 characters")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusDelayed    TaskStatus = "delayed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusCancelled, TaskStatusDelayed:
		return true
	}
	return false
}

// TaskPriority represents how urgent a task is.
type TaskPriority string

// Valid task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid reports whether the priority is one of the known values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// TaskCategory groups tasks by area of life.
type TaskCategory string

// Valid task categories.
const (
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryFamily   TaskCategory = "family"
	TaskCategoryHealth   TaskCategory = "health"
	TaskCategoryFinance  TaskCategory = "finance"
	TaskCategoryOther    TaskCategory = "other"
)

// IsValid reports whether the category is one of the known values.
func (c TaskCategory) IsValid() bool {
	switch c {
	case TaskCategoryWork, TaskCategoryPersonal, TaskCategoryFamily,
		TaskCategoryHealth, TaskCategoryFinance, TaskCategoryOther:
		return true
	}
	return false
}

// Task represents a ticket on the dashboard. The JSON field names are part of
// the wire contract shared with the browser clients and must not change
// (including the camelCase assigneeId, which the original API exposes).
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDatetime *time.Time   `json:"due_datetime,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Category    TaskCategory `json:"category"`
	AssigneeID  *int64       `json:"assigneeId,omitempty"`
}

// NewTask creates a new Task with server-assigned timestamps. The ID is zero
// until the store assigns one. Returns an error if validation fails.
func NewTask(
	title, description string,
	dueDatetime *time.Time,
	status TaskStatus,
	priority TaskPriority,
	category TaskCategory,
	assigneeID *int64,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		DueDatetime: dueDatetime,
		CreatedAt:   now,
		UpdatedAt:   now,
		Status:      status,
		Priority:    priority,
		Category:    category,
		AssigneeID:  assigneeID,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns a sentinel error for the first field that fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if t.Description == "" {
		return ErrEmptyDescription
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !t.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
