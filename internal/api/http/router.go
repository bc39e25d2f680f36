package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/competition-service/internal/api/http/handlers"
	"github.com/spec-kit/competition-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Users        *handlers.UsersHandler
	Competitions *handlers.CompetitionsHandler
	Authenticate fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Users.Register)
	authGroup.Post("/users/login", cfg.Users.Login)

	manageCompetitions := auth.RequireCapability(auth.CapManageCompetitions)
	manageAnnouncements := auth.RequireCapability(auth.CapManageAnnouncements)

	competitions := app.Group("/competitions", cfg.Authenticate)
	competitions.Get("/", cfg.Competitions.List)
	competitions.Post("/", manageCompetitions, cfg.Competitions.Create)
	competitions.Get("/:id", cfg.Competitions.Get)
	competitions.Put("/:id", manageCompetitions, cfg.Competitions.Update)
	competitions.Delete("/:id", manageCompetitions, cfg.Competitions.Delete)
	competitions.Post("/:id/announcements", manageAnnouncements, cfg.Competitions.CreateAnnouncement)
	competitions.Delete("/:id/announcements/:announcementId", manageAnnouncements, cfg.Competitions.DeleteAnnouncement)
	competitions.Post("/:id/registrations", cfg.Competitions.Register)
	competitions.Get("/:id/teams", cfg.Competitions.Roster)

	teams := app.Group("/teams", cfg.Authenticate)
	teams.Get("/:id/registrations", cfg.Competitions.TeamRegistrations)
}
