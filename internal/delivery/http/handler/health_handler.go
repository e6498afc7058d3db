package handler

import (
	"context"
	"time"

	"skill-graph/internal/delivery/http/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is any optional dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health always answers 200: optional dependencies degrade features but
// never take the engine down.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.deps))
	for name, d := range h.deps {
		if d == nil {
			deps[name] = "disabled"
			continue
		}
		if err := d.Ping(ctx); err != nil {
			deps[name] = "unavailable"
			continue
		}
		deps[name] = "ok"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "up", "dependencies": deps})
}
