// Package client provides a typed HTTP client for the task REST API.
// It is the "remote task store" side of the shared task cache: the cache
// calls ListTasks through this client, and the UI surfaces call the write
// operations directly, informing the cache of outcomes afterwards.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
)

// TaskPayload is the body for task create and update calls. The server owns
// id and timestamps, so the payload carries only the mutable fields.
type TaskPayload struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDatetime *time.Time          `json:"due_datetime,omitempty"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	Category    domain.TaskCategory `json:"category"`
	AssigneeID  *int64              `json:"assigneeId,omitempty"`
}

// TokenResponse is the body of a successful login call.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Config configures a Client.
type Config struct {
	// BaseURL is the root of the API, e.g. "http://localhost:8080/api".
	BaseURL string

	// HTTPClient is the underlying HTTP client. Defaults to a client with
	// a 30 second timeout.
	HTTPClient *http.Client

	// BreakerEnabled wires a circuit breaker around outbound calls so a
	// flapping backend trips fast instead of queueing timeouts.
	BreakerEnabled bool

	// Logger for request-level debug logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the task REST API. It carries the bearer
// token obtained via Login and attaches it to every subsequent call.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

// New creates a Client from the given configuration.
func New(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   httpc,
		logger:  log.With(slog.String("component", "task_client")),
	}

	if cfg.BreakerEnabled {
		c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "task-api",
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		})
	}

	return c
}

// SetToken replaces the bearer token used for authenticated calls.
// Login calls this automatically on success.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the bearer token currently in use, empty if not logged in.
func (c *Client) Token() string {
	return c.token
}

// Login authenticates with the API using the form-encoded OAuth2 password
// shape and stores the returned bearer token on the client.
// Returns ErrInvalidCredentials on a 401 response.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/auth/login",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.send(req)
	if err != nil {
		var apiErr *APIError
		if AsAPIError(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	var tok TokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	c.token = tok.AccessToken
	return &tok, nil
}

// Me returns the authenticated user's record.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTasks fetches the full task list, newest first.
// This is the fetch the shared task cache coalesces and caches.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.getJSON(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := c.getJSON(ctx, fmt.Sprintf("/tasks/%d", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task and returns the server's record of it,
// including the assigned ID and timestamps.
func (c *Client) CreateTask(ctx context.Context, payload TaskPayload) (*domain.Task, error) {
	var task domain.Task
	if err := c.doJSON(ctx, http.MethodPost, "/tasks", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces the task's mutable fields and returns the updated
// record with the server's bumped updated_at.
func (c *Client) UpdateTask(ctx context.Context, id int64, payload TaskPayload) (*domain.Task, error) {
	var task domain.Task
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes the task with the given ID.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.baseURL+fmt.Sprintf("/tasks/%d", id), nil,
	)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	_, err = c.send(req)
	return err
}

// getJSON performs an authenticated GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	body, err := c.send(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// doJSON performs an authenticated request with a JSON body and decodes the
// response body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, dst any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.send(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// send executes the request, through the circuit breaker when enabled,
// and returns the response body. Non-2xx responses become *APIError.
func (c *Client) send(req *http.Request) ([]byte, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if c.breaker == nil {
		return c.execute(req)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.execute(req)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, fmt.Errorf("task API unavailable: %w", err)
	}
	return body, err
}

// execute performs the HTTP round trip and reads the full body.
func (c *Client) execute(req *http.Request) ([]byte, error) {
	c.logger.Debug("sending request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to task API failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}
