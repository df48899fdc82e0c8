package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/api/shared"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/mocks"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"
)

func activeUser() *domain.User {
	return &domain.User{
		ID:             1,
		Name:           "Jane",
		Email:          "jane@example.com",
		HashedPassword: "hashed:password123",
		IsActive:       true,
	}
}

func postLoginForm(t *testing.T, handler http.HandlerFunc, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	if username != "" {
		form.Set("username", username)
	}
	if password != "" {
		form.Set("password", password)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success returns bearer token", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{User: activeUser()},
			&mocks.MockJWTService{Token: "signed-token"},
			&mocks.MockPasswordVerifier{},
		)
		rec := postLoginForm(t, h.Login, "jane@example.com", "password123")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "signed-token", body.AccessToken)
		assert.Equal(t, "bearer", body.TokenType)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{Err: store.ErrUserNotFound},
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{},
		)
		rec := postLoginForm(t, h.Login, "nobody@example.com", "password123")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{User: activeUser()},
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{},
		)
		rec := postLoginForm(t, h.Login, "jane@example.com", "wrong-password")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("inactive account looks like bad credentials", func(t *testing.T) {
		t.Parallel()
		user := activeUser()
		user.IsActive = false
		h := NewAuthHandler(
			&mocks.MockUserStore{User: user},
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{},
		)
		rec := postLoginForm(t, h.Login, "jane@example.com", "password123")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{},
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{},
		)
		rec := postLoginForm(t, h.Login, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("token generation failure is a 500", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{User: activeUser()},
			&mocks.MockJWTService{Err: assert.AnError},
			&mocks.MockPasswordVerifier{},
		)
		rec := postLoginForm(t, h.Login, "jane@example.com", "password123")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func postRegister(t *testing.T, handler http.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	t.Parallel()

	validPayload := func() map[string]any {
		return map[string]any{
			"name":             "Jane",
			"email":            "jane@example.com",
			"password":         "password123",
			"confirm_password": "password123",
		}
	}

	t.Run("success returns 201 user", func(t *testing.T) {
		t.Parallel()
		userStore := &mocks.MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				user.ID = 9
				return nil
			},
		}
		h := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rec := postRegister(t, h.Register, validPayload())

		assert.Equal(t, http.StatusCreated, rec.Code)
		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, int64(9), user.ID)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NotContains(t, rec.Body.String(), "password123")
	})

	t.Run("password mismatch", func(t *testing.T) {
		t.Parallel()
		payload := validPayload()
		payload["confirm_password"] = "different123"
		h := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rec := postRegister(t, h.Register, payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Passwords do not match")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{Err: store.ErrEmailExists},
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{},
		)
		rec := postRegister(t, h.Register, validPayload())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email already registered")
	})

	t.Run("invalid email format", func(t *testing.T) {
		t.Parallel()
		payload := validPayload()
		payload["email"] = "not-an-email"
		h := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rec := postRegister(t, h.Register, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		payload := validPayload()
		payload["password"] = "short"
		payload["confirm_password"] = "short"
		h := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rec := postRegister(t, h.Register, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	meRequest := func(userID any) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		if userID != nil {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
			req = req.WithContext(ctx)
		}
		return req
	}

	t.Run("returns user record", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{User: activeUser()},
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{},
		)
		rec := httptest.NewRecorder()
		h.Me(rec, meRequest(int64(1)))

		assert.Equal(t, http.StatusOK, rec.Code)
		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("missing user id in context", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rec := httptest.NewRecorder()
		h.Me(rec, meRequest(nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user deleted since token issued", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(
			&mocks.MockUserStore{Err: store.ErrUserNotFound},
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{},
		)
		rec := httptest.NewRecorder()
		h.Me(rec, meRequest(int64(1)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "User no longer exists")
	})
}
