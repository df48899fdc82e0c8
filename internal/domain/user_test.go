package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("Jane Roe", "jane@example.com", "password123")
	require.NoError(t, err)

	assert.Zero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.Equal(t, "password123", user.Password)
	assert.Empty(t, user.HashedPassword)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{
			name:    "valid with plaintext password",
			user:    User{Name: "Jane", Email: "jane@example.com", Password: "password123"},
			wantErr: nil,
		},
		{
			name:    "valid with hash only",
			user:    User{Name: "Jane", Email: "jane@example.com", HashedPassword: "$2a$10$abc"},
			wantErr: nil,
		},
		{
			name:    "empty name",
			user:    User{Email: "jane@example.com", Password: "password123"},
			wantErr: ErrEmptyName,
		},
		{
			name:    "empty email",
			user:    User{Name: "Jane", Password: "password123"},
			wantErr: ErrEmptyEmail,
		},
		{
			name:    "malformed email",
			user:    User{Name: "Jane", Email: "jane@", Password: "password123"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "email without domain dot",
			user:    User{Name: "Jane", Email: "jane@localhost", Password: "password123"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "password too short",
			user:    User{Name: "Jane", Email: "jane@example.com", Password: "short"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "password too long",
			user:    User{Name: "Jane", Email: "jane@example.com", Password: strings.Repeat("x", 73)},
			wantErr: ErrPasswordTooLong,
		},
		{
			name:    "no password at all",
			user:    User{Name: "Jane", Email: "jane@example.com"},
			wantErr: ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.user.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUserJSONHidesCredentials(t *testing.T) {
	t.Parallel()

	user := User{
		ID:             1,
		Name:           "Jane",
		Email:          "jane@example.com",
		Password:       "plaintext",
		HashedPassword: "$2a$10$abc",
		IsActive:       true,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "plaintext")
	assert.NotContains(t, string(raw), "$2a$10$abc")
	assert.Contains(t, string(raw), `"is_active":true`)
}
