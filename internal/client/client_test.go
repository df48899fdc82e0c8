package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success stores token", func(t *testing.T) {
		t.Parallel()
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "jane@example.com", r.PostFormValue("username"))
			assert.Equal(t, "password123", r.PostFormValue("password"))
			writeJSON(t, w, http.StatusOK, map[string]string{
				"access_token": "tok-123",
				"token_type":   "bearer",
			})
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL + "/api"})
		tok, err := c.Login(context.Background(), "jane@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "tok-123", tok.AccessToken)
		assert.Equal(t, "tok-123", c.Token())
	})

	t.Run("bad credentials", func(t *testing.T) {
		t.Parallel()
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL + "/api"})
		_, err := c.Login(context.Background(), "jane@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, c.Token())
	})
}

func TestAuthenticatedCalls(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:          1,
		Title:       "First",
		Description: "desc",
		DueDatetime: &due,
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityHigh,
		Category:    domain.TaskCategoryWork,
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}

		switch r.Method + " " + r.URL.Path {
		case "GET /api/auth/me":
			writeJSON(t, w, http.StatusOK, domain.User{ID: 1, Name: "Jane", Email: "jane@example.com"})
		case "GET /api/tasks":
			writeJSON(t, w, http.StatusOK, []domain.Task{task})
		case "GET /api/tasks/1":
			writeJSON(t, w, http.StatusOK, task)
		case "POST /api/tasks":
			var payload TaskPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			created := task
			created.ID = 2
			created.Title = payload.Title
			writeJSON(t, w, http.StatusCreated, created)
		case "PUT /api/tasks/1":
			var payload TaskPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			updated := task
			updated.Title = payload.Title
			writeJSON(t, w, http.StatusOK, updated)
		case "DELETE /api/tasks/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		}
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL + "/api"})
	c.SetToken("tok-123")
	ctx := context.Background()

	t.Run("me", func(t *testing.T) {
		user, err := c.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("list tasks", func(t *testing.T) {
		tasks, err := c.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, int64(1), tasks[0].ID)
	})

	t.Run("get task", func(t *testing.T) {
		got, err := c.GetTask(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "First", got.Title)
		require.NotNil(t, got.DueDatetime)
		assert.True(t, got.DueDatetime.Equal(due))
	})

	t.Run("create task", func(t *testing.T) {
		created, err := c.CreateTask(ctx, TaskPayload{
			Title:       "Second",
			Description: "desc",
			Status:      domain.TaskStatusPending,
			Priority:    domain.TaskPriorityLow,
			Category:    domain.TaskCategoryOther,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), created.ID)
		assert.Equal(t, "Second", created.Title)
	})

	t.Run("update task", func(t *testing.T) {
		updated, err := c.UpdateTask(ctx, 1, TaskPayload{
			Title:       "Renamed",
			Description: "desc",
			Status:      domain.TaskStatusInProgress,
			Priority:    domain.TaskPriorityHigh,
			Category:    domain.TaskCategoryWork,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})

	t.Run("delete task", func(t *testing.T) {
		assert.NoError(t, c.DeleteTask(ctx, 1))
	})

	t.Run("not found maps to sentinel", func(t *testing.T) {
		_, err := c.GetTask(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)

		var apiErr *APIError
		require.True(t, AsAPIError(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Task not found", apiErr.Message)
	})

	t.Run("unauthorized maps to sentinel", func(t *testing.T) {
		other := New(Config{BaseURL: ts.URL + "/api"})
		other.SetToken("wrong-token")
		_, err := other.ListTasks(ctx)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL + "/api", BreakerEnabled: true})
	c.SetToken("tok")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.ListTasks(ctx)
		require.Error(t, err)
	}

	// The breaker is open now: this call must fail without reaching the server.
	before := hits.Load()
	_, err := c.ListTasks(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task API unavailable")
	assert.Equal(t, before, hits.Load())
}

func TestContextCancellation(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL + "/api"})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ListTasks(ctx)
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "context deadline exceeded")
}
