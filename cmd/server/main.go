// Package main implements the entry point for the ticket API server,
// which manages users' tasks and serves printable thermal-printer tickets.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/config"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires the application, and serves until a
// shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.seedAdminUser(ctx); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	return app.Run(ctx)
}
