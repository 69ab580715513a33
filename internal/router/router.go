package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/config"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/handler"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/middleware"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/observability"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CourtHandler    *handler.CourtHandler
	StudentHandler  *handler.StudentHandler
	ScheduleHandler *handler.ScheduleHandler
	CashboxHandler  *handler.CashboxHandler
	HistoryHandler  *handler.HistoryHandler
	SessionHandler  *handler.SessionHandler
	AdminHandler    *handler.AdminHandler
	HealthProbes    map[string]handler.Probe
	LoginLimiter    fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Session tokens
// must already be parsed by middleware.Register.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	requireAdmin := middleware.RequireRole(service.RoleAdmin)

	if deps.SessionHandler != nil {
		deps.SessionHandler.Register(api.Group("/session"), deps.LoginLimiter)
	}
	if deps.CourtHandler != nil {
		deps.CourtHandler.Register(api.Group("/court"))
	}
	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(api.Group("/schedule"))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}
	if deps.CashboxHandler != nil {
		deps.CashboxHandler.Register(api.Group("/cashbox", requireAdmin))
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.Register(api.Group("/history", requireAdmin))
	}
	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(api.Group("/admin", requireAdmin))
	}
}
