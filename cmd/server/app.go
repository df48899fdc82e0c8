package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/config"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/platform/postgres"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/service/auth"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// newApplication creates an application instance with all dependencies
// initialized. The database connection must already be established and
// migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	bcryptVerifier := auth.NewBcryptVerifier()
	app.passwordHasher = bcryptVerifier
	app.passwordVerifier = bcryptVerifier

	app.userStore = postgres.NewPostgresUserStore(db, app.passwordHasher, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	logger.Info("application initialized")
	return app, nil
}

// seedAdminUser creates the admin account from configuration when it does
// not exist yet. A missing admin configuration skips seeding entirely.
func (app *application) seedAdminUser(ctx context.Context) error {
	adminCfg := app.config.Admin
	if adminCfg.Email == "" || adminCfg.Password == "" {
		app.logger.Debug("admin seed skipped, no admin credentials configured")
		return nil
	}

	_, err := app.userStore.GetByEmail(ctx, adminCfg.Email)
	if err == nil {
		app.logger.Debug("admin user already exists", "email_present", true)
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	name := adminCfg.Name
	if name == "" {
		name = "Admin"
	}

	admin, err := domain.NewUser(name, adminCfg.Email, adminCfg.Password)
	if err != nil {
		return fmt.Errorf("invalid admin credentials in configuration: %w", err)
	}
	admin.IsAdmin = true

	if err := app.userStore.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	app.logger.Info("admin user seeded", "user_id", admin.ID)
	return nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
