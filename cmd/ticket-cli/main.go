// Command ticket-cli logs into the task API, lists tasks through the shared
// cache, and writes the printable HTML ticket for a chosen task.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/cache"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/client"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/ticket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ticket-cli: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL  = flag.String("url", "http://localhost:8080/api", "base URL of the task API")
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		taskID   = flag.Int64("task", 0, "task ID to render as a ticket (0 lists tasks)")
		output   = flag.String("out", "", "write the ticket HTML to this file instead of stdout")
		cacheTTL = flag.Duration("cache-ttl", cache.DefaultTTL, "how long a fetched task list stays fresh")
		fetchTO  = flag.Duration("fetch-timeout", cache.DefaultFetchTimeout, "timeout for a single task list fetch")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	api := client.New(client.Config{
		BaseURL:        *baseURL,
		BreakerEnabled: true,
		Logger:         logger,
	})

	if _, err := api.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	tasks := cache.New(api,
		cache.WithTTL(*cacheTTL),
		cache.WithFetchTimeout(*fetchTO),
		cache.WithLogger(logger))
	tasks.EnsureFresh(ctx, false)

	snap := tasks.Snapshot()
	if snap.Err != "" {
		return fmt.Errorf("failed to load tasks: %s", snap.Err)
	}

	if *taskID == 0 {
		for _, t := range snap.Tasks {
			due := "-"
			if t.DueDatetime != nil {
				due = t.DueDatetime.Local().Format("02/01/2006 15:04")
			}
			fmt.Printf("%6d  [%-11s] %-8s %-30s due %s\n", t.ID, t.Status, t.Priority, t.Title, due)
		}
		return nil
	}

	for _, t := range snap.Tasks {
		if t.ID != *taskID {
			continue
		}
		html, err := ticket.RenderTask(t)
		if err != nil {
			return err
		}
		if *output == "" {
			fmt.Print(html)
			return nil
		}
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write ticket: %w", err)
		}
		fmt.Printf("ticket written to %s\n", *output)
		return nil
	}

	return fmt.Errorf("task %d not found", *taskID)
}
