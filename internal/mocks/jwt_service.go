package mocks

import (
	"context"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID int64, email string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default response values used when no Fn override is set.
	Token  string
	Claims *auth.Claims
	Err    error
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64, email string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, email)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Token, nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}
