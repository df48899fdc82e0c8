// Package cache provides the shared in-memory task cache. One Cache
// instance is created at application start and handed to every consumer,
// so all surfaces read the same snapshot and a burst of refresh requests
// collapses into a single fetch against the task API.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
)

// DefaultTTL is how long a successful fetch stays fresh.
const DefaultTTL = 5 * time.Minute

// DefaultFetchTimeout bounds a single fetch so a hung request cannot leave
// the cache loading forever.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher loads the full task list from the remote task store.
// *client.Client satisfies it.
type Fetcher interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
}

// Snapshot is a read-only view of the cache state. Tasks is a copy; callers
// may not observe later mutations through it.
type Snapshot struct {
	Tasks     []domain.Task
	LastFetch time.Time
	Loading   bool
	Err       string
}

// Cache holds the task list with time-based staleness, fetch
// de-duplication, and subscriber notification. All methods are safe for
// concurrent use.
type Cache struct {
	fetcher      Fetcher
	ttl          time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger

	mu        sync.Mutex
	tasks     []domain.Task
	lastFetch time.Time
	loading   bool
	err       string

	nextSubID int64
	subs      map[int64]func()
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the staleness threshold.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithFetchTimeout overrides the per-fetch timeout.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *Cache) {
		if timeout > 0 {
			c.fetchTimeout = timeout
		}
	}
}

// WithLogger sets the logger used for fetch lifecycle logging.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.logger = log.With(slog.String("component", "task_cache"))
		}
	}
}

// New creates a Cache backed by the given fetcher.
func New(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:      fetcher,
		ttl:          DefaultTTL,
		fetchTimeout: DefaultFetchTimeout,
		logger:       slog.Default().With(slog.String("component", "task_cache")),
		subs:         make(map[int64]func()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current cache state.
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks := make([]domain.Task, len(c.tasks))
	copy(tasks, c.tasks)
	return Snapshot{
		Tasks:     tasks,
		LastFetch: c.lastFetch,
		Loading:   c.loading,
		Err:       c.err,
	}
}

// Subscribe registers fn to be called after every state change. It returns
// an unsubscribe function that is safe to call more than once. No callback
// is delivered at subscribe time; read Snapshot for the current state.
func (c *Cache) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// subscribersLocked copies the subscriber set so callbacks run without the
// lock held and may themselves subscribe or unsubscribe. Callers must hold
// c.mu.
func (c *Cache) subscribersLocked() []func() {
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// EnsureFresh makes the cache usable for a read. If the cached list is
// non-empty and within the TTL (and force is false) it is a pure cache
// hit. If a fetch is already in flight the call returns immediately and
// the caller will be notified when that fetch settles. Otherwise a fetch
// runs on the calling goroutine, bounded by the fetch timeout.
//
// EnsureFresh never returns an error: fetch failures land in the
// snapshot's Err field so every concurrent caller observes the same
// outcome.
func (c *Cache) EnsureFresh(ctx context.Context, force bool) {
	c.mu.Lock()

	if !force && len(c.tasks) > 0 && time.Since(c.lastFetch) < c.ttl {
		c.err = ""
		fns := c.subscribersLocked()
		c.mu.Unlock()
		notify(fns)
		return
	}

	if c.loading {
		c.mu.Unlock()
		return
	}

	c.loading = true
	c.err = ""
	fns := c.subscribersLocked()
	c.mu.Unlock()
	notify(fns)

	fetchStart := time.Now()
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	tasks, err := c.fetcher.ListTasks(fetchCtx)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.err = err.Error()
		c.logger.Warn("task fetch failed", slog.String("error", err.Error()))
	} else {
		c.tasks = tasks
		c.lastFetch = fetchStart
		c.err = ""
		c.logger.Debug("task fetch completed",
			slog.Int("count", len(tasks)),
			slog.Duration("elapsed", time.Since(fetchStart)))
	}
	fns = c.subscribersLocked()
	c.mu.Unlock()
	notify(fns)
}

// Invalidate marks the cached list stale so the next EnsureFresh fetches.
// The cached tasks stay readable and no notification is sent.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.lastFetch = time.Time{}
	c.mu.Unlock()
}

// AddTask prepends a task the caller has already created on the server.
func (c *Cache) AddTask(task domain.Task) {
	c.mu.Lock()
	c.tasks = append([]domain.Task{task}, c.tasks...)
	fns := c.subscribersLocked()
	c.mu.Unlock()
	notify(fns)
}

// UpdateTask replaces the cached entry with the same ID, preserving order.
// A task the cache does not hold is ignored.
func (c *Cache) UpdateTask(task domain.Task) {
	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = task
			break
		}
	}
	fns := c.subscribersLocked()
	c.mu.Unlock()
	notify(fns)
}

// RemoveTask drops the cached entry with the given ID, preserving the
// order of the remaining entries.
func (c *Cache) RemoveTask(id int64) {
	c.mu.Lock()
	filtered := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	c.tasks = filtered
	fns := c.subscribersLocked()
	c.mu.Unlock()
	notify(fns)
}
