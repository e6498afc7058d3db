package routes

import (
	"skill-graph/internal/delivery/http/handler"
	"skill-graph/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP entry point of the service.
type Registry struct {
	Health       *handler.HealthHandler
	Skills       *handler.SkillHandler
	Jobs         *handler.JobScoreHandler
	LearningPath *handler.LearningPathHandler
	WS           *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r)
}
