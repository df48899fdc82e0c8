package mocks

import (
	"context"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)

	// Default response values used when no Fn override is set.
	User *domain.User
	Err  error
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.User, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.User, nil
}
