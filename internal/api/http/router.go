package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-portal/internal/api/http/handlers"
	"github.com/spec-kit/listing-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Listings       *handlers.ListingsHandler
	Moderation     *handlers.ModerationHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/listings", cfg.Listings.Submit)
	app.Get("/listings", cfg.Listings.Directory)

	authGroup := app.Group("/auth/admin")
	authGroup.Post("/login", cfg.Admin.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Admin.ChangePassword)

	adminGroup := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminGroup.Get("/listings", cfg.Moderation.Queue)
	adminGroup.Post("/listings/:id/decision", cfg.Moderation.Decide)
	adminGroup.Get("/blacklist", cfg.Moderation.Blacklist)
}
