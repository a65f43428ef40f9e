package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskhub-api/internal/api"
	"github.com/phrazzld/taskhub-api/internal/api/middleware"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

const healthCheckTimeout = 2 * time.Second

type routerDeps struct {
	logger               *slog.Logger
	requestAuthenticator *middleware.RequestAuthenticator
	authHandler          *api.AuthHandler
	userHandler          *api.UserHandler
	taskHandler          *api.TaskHandler
	commentHandler       *api.CommentHandler
	allowedOrigins       []string

	// ping checks the database for /health; nil skips the check.
	ping func(ctx context.Context) error
}

// newRouter registers every route. The request authenticator runs on all
// requests and never rejects; protected groups add RequireAuthenticated and
// admin routes add RequireRole.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Trace(d.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(d.requestAuthenticator.Middleware)

	r.Get("/health", healthHandler(d.ping))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", d.authHandler.Login)
		r.Post("/auth/register", d.authHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated)
			requireAdmin := middleware.RequireRole(string(domain.RoleAdmin))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", d.userHandler.List)
				r.Get("/me", d.userHandler.Me)
				r.Get("/{id}", d.userHandler.Get)
				r.With(requireAdmin).Post("/", d.userHandler.Create)
				r.With(requireAdmin).Put("/{id}", d.userHandler.Update)
				r.With(requireAdmin).Delete("/{id}", d.userHandler.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", d.taskHandler.Create)
				r.Get("/", d.taskHandler.List)
				r.Get("/status", d.taskHandler.ListByStatus)
				r.Get("/priority", d.taskHandler.ListByPriority)
				r.Get("/user/{userId}", d.taskHandler.ListByUser)
				r.Get("/assignee/{assigneeId}", d.taskHandler.ListByAssignee)
				r.Get("/{id}", d.taskHandler.Get)
				r.Put("/{id}", d.taskHandler.Update)
				r.Delete("/{id}", d.taskHandler.Delete)
				r.Patch("/{id}/status", d.taskHandler.UpdateStatus)
				r.Get("/{id}/assignee", d.taskHandler.GetAssignee)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Post("/", d.commentHandler.Create)
				r.Get("/task/{taskId}", d.commentHandler.ListByTask)
				r.Get("/user/{userId}", d.commentHandler.ListByUser)
				r.Get("/{id}", d.commentHandler.Get)
				r.Put("/{id}", d.commentHandler.Update)
				r.Delete("/{id}", d.commentHandler.Delete)
			})
		})
	})

	return r
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
