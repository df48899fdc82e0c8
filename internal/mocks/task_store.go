package mocks

import (
	"context"
	"sync"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn    func(ctx context.Context) ([]domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id int64) error

	// Default response values used when no Fn override is set.
	Task  *domain.Task
	Tasks []domain.Task
	Err   error

	mu          sync.Mutex
	CreateCalls int
	ListCalls   int
	DeleteCalls int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Task, nil
}

func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tasks, nil
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}
