package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/ev-admin-gateway/internal/api/http/handlers"
	"github.com/spec-kit/ev-admin-gateway/internal/auth"
	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Users          *handlers.UsersHandler
	Risk           *handlers.RiskHandler
	Vehicles       *handlers.VehiclesHandler
	Analytics      *handlers.AnalyticsHandler
	Operations     *handlers.OperationsHandler
	AuthMiddleware *auth.AuthMiddleware
	Registry       *prometheus.Registry
}

// RegisterRoutes wires HTTP routes. Everything under /admin requires a valid
// backend-issued token; mutations additionally require the Admin role, while
// read-only pages are open to Station Staff as well.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle)
	staffOrAdmin := auth.RequireRole(domain.RoleAdmin, domain.RoleStationStaff)
	adminOnly := auth.RequireAdmin()

	admin.Get("/staff", staffOrAdmin, cfg.Staff.List)
	admin.Post("/staff", adminOnly, cfg.Staff.Create)
	admin.Get("/staff/audits", adminOnly, cfg.Staff.Audits)

	admin.Get("/users", staffOrAdmin, cfg.Users.List)
	admin.Patch("/users/:id/status", adminOnly, cfg.Users.UpdateStatus)
	admin.Patch("/users/:id/role", adminOnly, cfg.Users.UpdateRole)
	admin.Put("/users/:id", adminOnly, cfg.Users.Update)

	admin.Get("/customers/risky", staffOrAdmin, cfg.Risk.ListRisky)
	admin.Get("/customers/risky/:id", staffOrAdmin, cfg.Risk.GetRisky)
	admin.Post("/customers/:id/reset-risk-score", adminOnly, cfg.Risk.ResetRiskScore)
	admin.Post("/customers/:id/violations", adminOnly, cfg.Risk.AddViolation)

	admin.Get("/vehicles", staffOrAdmin, cfg.Vehicles.List)
	admin.Get("/vehicles/:id", staffOrAdmin, cfg.Vehicles.Get)
	admin.Post("/vehicles", adminOnly, cfg.Vehicles.Create)
	admin.Put("/vehicles/:id", adminOnly, cfg.Vehicles.Update)
	admin.Patch("/vehicles/:id/status", staffOrAdmin, cfg.Vehicles.UpdateStatus)
	admin.Delete("/vehicles/:id", adminOnly, cfg.Vehicles.Delete)

	admin.Get("/analytics/revenue", adminOnly, cfg.Analytics.Revenue)
	admin.Get("/analytics/dashboard", adminOnly, cfg.Analytics.Dashboard)

	admin.Get("/rentals", staffOrAdmin, cfg.Operations.ListRentals)
	admin.Get("/rentals/:id", staffOrAdmin, cfg.Operations.GetRental)

	admin.Get("/maintenance", staffOrAdmin, cfg.Operations.ListMaintenance)
	admin.Post("/maintenance", staffOrAdmin, cfg.Operations.ReportMaintenance)
	admin.Post("/maintenance/:id/complete", staffOrAdmin, cfg.Operations.CompleteMaintenance)

	admin.Post("/chatbot/query", staffOrAdmin, cfg.Operations.AskChatbot)
}
