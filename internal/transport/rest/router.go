package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/ticket-management/internal/auth"
	"github.com/frahmantamala/ticket-management/internal/catalog"
	"github.com/frahmantamala/ticket-management/internal/team"
	"github.com/frahmantamala/ticket-management/internal/ticket"
	"github.com/frahmantamala/ticket-management/internal/transport/middleware"
	"github.com/frahmantamala/ticket-management/internal/transport/swagger"
	"github.com/frahmantamala/ticket-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, ticketHandler *ticket.Handler, teamHandler *team.Handler, catalogHandler *catalog.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		// Public catalog routes (no auth required)
		if catalogHandler != nil {
			r.Get("/statuses", catalogHandler.GetStatuses)
			r.Get("/priorities", catalogHandler.GetPriorities)
			r.Get("/categories", catalogHandler.GetCategories)
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				// Ticket routes; per-ticket access is decided by the
				// permission resolver inside the service layer, not here
				if ticketHandler != nil {
					pr.Route("/tickets", func(tr chi.Router) {
						tr.Post("/", ticketHandler.CreateTicket)
						tr.Get("/{id}", ticketHandler.GetTicket)
						tr.Patch("/{id}/status", ticketHandler.ChangeStatus)
						tr.Patch("/{id}/priority", ticketHandler.ChangePriority)
						tr.Patch("/{id}/category", ticketHandler.ChangeCategory)
						tr.Patch("/{id}/assignee", ticketHandler.Assign)
						tr.Post("/{id}/claim", ticketHandler.Claim)
						tr.Post("/{id}/threads", ticketHandler.CreateThread)
						tr.Get("/{id}/threads", ticketHandler.ListThreads)
					})
				}

				// Team routes
				if teamHandler != nil {
					pr.Route("/teams", func(tr chi.Router) {
						tr.Get("/", teamHandler.GetTeams)
						tr.Get("/{id}", teamHandler.GetTeam)
						tr.Get("/{id}/members", teamHandler.GetMembers)
						tr.Post("/{id}/permissions", teamHandler.GrantPermission)
						tr.Delete("/{id}/permissions", teamHandler.RevokePermission)
					})
				}
			})
		}
	})
}
