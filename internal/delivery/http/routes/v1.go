package routes

import "github.com/gofiber/fiber/v3"

func RegisterV1(r fiber.Router, reg *Registry) {
	if r == nil || reg == nil {
		return
	}

	if reg.Skills != nil {
		reg.Skills.RegisterRoutes(r)
	}
	if reg.Jobs != nil {
		reg.Jobs.RegisterRoutes(r)
	}
	if reg.LearningPath != nil {
		reg.LearningPath.RegisterRoutes(r)
	}
	if reg.WS != nil {
		r.Get("/ws/learning-paths", reg.WS.HandleLearningPathsWS)
	}
}
