package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// runMigrations applies all pending database migrations from the embedded
// migration files.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	migrationLogger := logger.With(slog.String("component", "migrations"))

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	start := time.Now()
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	migrationLogger.Info("migrations applied",
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// slogGooseLogger adapts goose's logger interface onto slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
