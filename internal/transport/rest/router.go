package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AMOUAN/projet-electro/internal/apikey"
	"github.com/AMOUAN/projet-electro/internal/application"
	"github.com/AMOUAN/projet-electro/internal/auth"
	"github.com/AMOUAN/projet-electro/internal/company"
	"github.com/AMOUAN/projet-electro/internal/contract"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	"github.com/AMOUAN/projet-electro/internal/network"
	"github.com/AMOUAN/projet-electro/internal/notification"
	"github.com/AMOUAN/projet-electro/internal/role"
	"github.com/AMOUAN/projet-electro/internal/setting"
	"github.com/AMOUAN/projet-electro/internal/transport/middleware"
	"github.com/AMOUAN/projet-electro/internal/transport/swagger"
	"github.com/AMOUAN/projet-electro/internal/user"
)

// Handlers carries every feature handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Company      *company.Handler
	Contract     *contract.Handler
	Application  *application.Handler
	Network      *network.Handler
	Notification *notification.Handler
	Role         *role.Handler
	APIKey       *apikey.Handler
	Setting      *setting.Handler
}

// RegisterAllRoutes mounts the API under /api/v1. Signup and credential
// endpoints stay public behind a per-IP rate limiter; telemetry routes
// accept a bearer token or an X-API-Key; everything else requires a
// bearer token, with write surfaces gated by role.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger, enableMetrics bool) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	if enableMetrics {
		router.Use(middleware.Metrics)
		router.Handle("/metrics", promhttp.Handler())
	}

	// OpenAPI spec at root, UI under /swagger
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	publicLimiter := middleware.NewRateLimiter(5, 10)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public auth and signup routes
		r.Group(func(pub chi.Router) {
			pub.Use(publicLimiter.Middleware)

			pub.Route("/auth", func(ar chi.Router) {
				ar.Post("/login", h.Auth.Login)
				ar.Post("/forgot-password", h.Auth.ForgotPassword)
				ar.Get("/validate-reset-token/{token}", h.Auth.ValidateResetToken)
				ar.Post("/reset-password", h.Auth.ResetPassword)
			})

			pub.Post("/users/request-access", h.User.RequestAccess)
			pub.Post("/users/activate", h.User.ActivateAccount)
		})

		// Telemetry routes take either a bearer token or a collector's
		// X-API-Key
		r.Group(func(tr chi.Router) {
			tr.Use(h.APIKey.Middleware(h.Auth.AuthMiddleware))

			tr.Route("/network", func(nr chi.Router) {
				nr.Get("/health", h.Network.HealthStats)
				nr.Get("/gateways-health", h.Network.GatewayHealthList)
				nr.Get("/gateways", h.Network.Gateways)
				nr.Get("/gateways/{id}/stats", h.Network.GatewayStats)
				nr.Get("/frames", h.Network.Frames)
			})

			tr.Route("/dashboard", func(dr chi.Router) {
				dr.Get("/stats", h.Network.DashboardStats)
				dr.Get("/activity", h.Network.RecentActivity)
			})
		})

		// Everything below requires a valid token and an ACTIVE account
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notification.List)
				nr.Get("/unread-count", h.Notification.UnreadCount)
				nr.Patch("/read-all", h.Notification.MarkAllRead)
				nr.Patch("/{id}/read", h.Notification.MarkRead)
				nr.Delete("/{id}", h.Notification.Delete)
			})

			pr.Get("/applications", h.Application.List)
			pr.Get("/applications/{id}", h.Application.Get)

			pr.Get("/contracts", h.Contract.List)
			pr.Get("/contracts/{id}", h.Contract.Get)

			// Administration
			pr.Group(func(adm chi.Router) {
				adm.Use(h.Auth.RequireRoles(roleDatamodel.SuperAdmin, roleDatamodel.Admin))

				adm.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.List)
					ur.Post("/", h.User.Create)
					ur.Get("/{id}", h.User.Get)
					ur.Put("/{id}", h.User.Update)
				})

				adm.Route("/companies", func(cr chi.Router) {
					cr.Get("/", h.Company.List)
					cr.Post("/", h.Company.Create)
					cr.Get("/{id}", h.Company.Get)
					cr.Put("/{id}", h.Company.Update)
					cr.Delete("/{id}", h.Company.Delete)
				})

				adm.Post("/contracts", h.Contract.Create)
				adm.Put("/contracts/{id}", h.Contract.Update)
				adm.Delete("/contracts/{id}", h.Contract.Delete)

				adm.Get("/roles", h.Role.List)
				adm.Get("/roles/{id}", h.Role.Get)

				adm.Route("/settings", func(sr chi.Router) {
					sr.Get("/", h.Setting.GetAll)
					sr.Put("/", h.Setting.UpsertMany)
					sr.Get("/{key}", h.Setting.Get)
					sr.Put("/{key}", h.Setting.Upsert)
				})
			})

			// SUPER_ADMIN only
			pr.Group(func(sa chi.Router) {
				sa.Use(h.Auth.RequireRoles(roleDatamodel.SuperAdmin))

				sa.Delete("/users/{id}", h.User.Delete)

				sa.Route("/api-keys", func(kr chi.Router) {
					kr.Get("/", h.APIKey.List)
					kr.Post("/", h.APIKey.Create)
					kr.Get("/{id}", h.APIKey.Get)
					kr.Delete("/{id}", h.APIKey.Delete)
				})
			})
		})
	})
}
