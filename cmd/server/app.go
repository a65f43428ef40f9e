package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskhub-api/internal/api"
	"github.com/phrazzld/taskhub-api/internal/api/middleware"
	"github.com/phrazzld/taskhub-api/internal/config"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/redact"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// application holds the shared dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	taskStore    store.TaskStore
	commentStore store.CommentStore

	codec         *auth.TokenCodec
	passwords     *auth.BcryptVerifier
	authenticator *auth.Authenticator
	directory     auth.Directory

	userService    service.UserService
	taskService    service.TaskService
	commentService service.CommentService
}

// newApplication wires stores, services and the auth core over db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.codec, err = auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime(), cfg.Auth.ClockSkew())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.passwords = auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.commentStore = postgres.NewPostgresCommentStore(db, logger)

	app.directory = service.NewUserDirectory(app.userStore)
	app.authenticator = auth.NewAuthenticator(
		app.directory,
		app.passwords,
		app.codec,
		cfg.Auth.LookupTimeout(),
		logger,
	)

	app.userService = service.NewUserService(app.userStore, app.passwords, db, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.userStore, db, logger)
	app.commentService = service.NewCommentService(app.commentStore, app.taskStore, app.userStore, db, logger)

	logger.Info("application initialized",
		slog.Int("bcrypt_cost", app.passwords.Cost()),
		slog.Duration("token_lifetime", app.codec.TTL()))
	return app, nil
}

// ensureAdmin creates the configured bootstrap admin when it does not exist yet.
func (app *application) ensureAdmin(ctx context.Context) error {
	email := app.config.Auth.AdminEmail
	if email == "" {
		return nil
	}

	created, err := app.userService.EnsureAdmin(ctx, email, app.config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to ensure bootstrap admin: %w", err)
	}
	if created {
		app.logger.Info("bootstrap admin created", slog.String("email", redact.String(email)))
	}
	return nil
}

// handler builds the HTTP handler for the application.
func (app *application) handler() http.Handler {
	return newRouter(routerDeps{
		logger: app.logger,
		requestAuthenticator: middleware.NewRequestAuthenticator(
			app.codec,
			app.directory,
			app.config.Auth.LookupTimeout(),
			app.logger,
		),
		authHandler:    api.NewAuthHandler(app.authenticator, app.userService, app.logger),
		userHandler:    api.NewUserHandler(app.userService, app.logger),
		taskHandler:    api.NewTaskHandler(app.taskService, app.logger),
		commentHandler: api.NewCommentHandler(app.commentService, app.logger),
		allowedOrigins: app.config.CORS.AllowedOrigins,
		ping:           app.db.PingContext,
	})
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.handler()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database pool.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
