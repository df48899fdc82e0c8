package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	assignee := int64(7)

	t.Run("valid task", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask("Buy groceries", "Milk and bread", &due,
			TaskStatusPending, TaskPriorityMedium, TaskCategoryPersonal, &assignee)
		require.NoError(t, err)

		assert.Zero(t, task.ID)
		assert.Equal(t, "Buy groceries", task.Title)
		assert.Equal(t, &due, task.DueDatetime)
		assert.Equal(t, &assignee, task.AssigneeID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	t.Run("nil due datetime and assignee", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask("Call dentist", "Reschedule", nil,
			TaskStatusPending, TaskPriorityLow, TaskCategoryHealth, nil)
		require.NoError(t, err)
		assert.Nil(t, task.DueDatetime)
		assert.Nil(t, task.AssigneeID)
	})
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	valid := func() Task {
		return Task{
			Title:       "Title",
			Description: "Description",
			Status:      TaskStatusPending,
			Priority:    TaskPriorityMedium,
			Category:    TaskCategoryWork,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{"valid", func(*Task) {}, nil},
		{"empty title", func(task *Task) { task.Title = "" }, ErrEmptyTitle},
		{"title too long", func(task *Task) { task.Title = strings.Repeat("a", 201) }, ErrTitleTooLong},
		{"title at limit", func(task *Task) { task.Title = strings.Repeat("a", 200) }, nil},
		{"empty description", func(task *Task) { task.Description = "" }, ErrEmptyDescription},
		{"invalid status", func(task *Task) { task.Status = "done" }, ErrInvalidStatus},
		{"invalid priority", func(task *Task) { task.Priority = "critical" }, ErrInvalidPriority},
		{"invalid category", func(task *Task) { task.Category = "misc" }, ErrInvalidCategory},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task := valid()
			tt.mutate(&task)

			err := task.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTaskEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskStatusDelayed.IsValid())
	assert.False(t, TaskStatus("archived").IsValid())
	assert.True(t, TaskPriorityUrgent.IsValid())
	assert.False(t, TaskPriority("").IsValid())
	assert.True(t, TaskCategoryFinance.IsValid())
	assert.False(t, TaskCategory("hobby").IsValid())
}

func TestTaskJSONShape(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	assignee := int64(3)
	task := Task{
		ID:          42,
		Title:       "Title",
		Description: "Description",
		DueDatetime: &due,
		CreatedAt:   due,
		UpdatedAt:   due,
		Status:      TaskStatusInProgress,
		Priority:    TaskPriorityHigh,
		Category:    TaskCategoryWork,
		AssigneeID:  &assignee,
	}

	raw, err := json.Marshal(task)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{
		"id", "title", "description", "due_datetime",
		"created_at", "updated_at", "status", "priority", "category", "assigneeId",
	} {
		assert.Contains(t, fields, key)
	}

	// Optional fields drop out when unset.
	task.DueDatetime = nil
	task.AssigneeID = nil
	raw, err = json.Marshal(task)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "due_datetime")
	assert.NotContains(t, string(raw), "assigneeId")
}
