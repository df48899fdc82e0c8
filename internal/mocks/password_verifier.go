package mocks

import (
	"github.com/rafaelmacedos/show-me-the-tickets/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordHasher and
// auth.PasswordVerifier for testing without paying the bcrypt cost.
type MockPasswordVerifier struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	HashErr    error
	CompareErr error
}

var (
	_ auth.PasswordHasher   = (*MockPasswordVerifier)(nil)
	_ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
)

func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareErr != nil {
		return m.CompareErr
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}
