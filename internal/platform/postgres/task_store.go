package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/platform/logger"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task, letting the database assign the ID, and stamps
// created_at/updated_at with the current instant.
// Returns store.ErrInvalidEntity if the assignee doesn't exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `
		INSERT INTO tasks (title, description, due_datetime, created_at, updated_at, status, priority, category, assignee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.DueDatetime,
		task.CreatedAt,
		task.UpdatedAt,
		task.Status,
		task.Priority,
		task.Category,
		task.AssigneeID,
	).Scan(&task.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: assignee not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return err
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, due_datetime, created_at, updated_at, status, priority, category, assignee_id
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	return task, nil
}

// List implements store.TaskStore.List
// Tasks come back newest first so the cache's prepend-on-create mirrors
// the order a fresh fetch would produce.
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, due_datetime, created_at, updated_at, status, priority, category, assignee_id
		FROM tasks
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		log.Error("task row iteration failed", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("tasks listed successfully", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// It replaces the task's mutable fields and bumps updated_at, keeping the
// monotonic updated_at guarantee for successive edits of the same task.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_datetime = $3, updated_at = $4,
		    status = $5, priority = $6, category = $7, assignee_id = $8
		WHERE id = $9
		RETURNING created_at
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.DueDatetime,
		task.UpdatedAt,
		task.Status,
		task.Priority,
		task.Category,
		task.AssigneeID,
		task.ID,
	).Scan(&task.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found during update", slog.Int64("task_id", task.ID))
			return store.ErrTaskNotFound
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task update",
				slog.String("error", err.Error()),
				slog.Int64("task_id", task.ID))
			return fmt.Errorf("%w: assignee not found", store.ErrInvalidEntity)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get affected rows after delete",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}
	if affected == 0 {
		log.Debug("task not found during delete", slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in column order shared by all task queries.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status, priority, category string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDatetime,
		&task.CreatedAt,
		&task.UpdatedAt,
		&status,
		&priority,
		&category,
		&task.AssigneeID,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.Category = domain.TaskCategory(category)
	return &task, nil
}
