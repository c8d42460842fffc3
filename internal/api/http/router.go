package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/http/handlers"
	"github.com/spec-kit/fieldops-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Sites          *handlers.SitesHandler
	Tasks          *handlers.TasksHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	staff.Get("/", cfg.Staff.List)
	staff.Post("/", cfg.Staff.Create)
	staff.Put("/:id", cfg.Staff.Update)
	staff.Delete("/:id", cfg.Staff.Delete)

	sites := app.Group("/sites", cfg.AuthMiddleware.Handle)
	sites.Get("/", cfg.Sites.List)
	sites.Get("/:id", cfg.Sites.Get)
	sites.Post("/", auth.RequireAdmin(), cfg.Sites.Create)
	sites.Put("/:id", auth.RequireAdmin(), cfg.Sites.Update)
	sites.Delete("/:id", auth.RequireAdmin(), cfg.Sites.Delete)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Post("/", auth.RequireAdmin(), cfg.Tasks.Create)
	tasks.Patch("/:id/status", cfg.Tasks.SetStatus)
	tasks.Delete("/:id", cfg.Tasks.Delete)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle)
	reports.Get("/task-status", cfg.Reports.ListTaskStatus)
}
