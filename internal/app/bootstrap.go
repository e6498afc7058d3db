package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"skill-graph/internal/config"
	"skill-graph/internal/delivery/http/handler"
	"skill-graph/internal/delivery/http/middleware"
	"skill-graph/internal/delivery/http/routes"
	"skill-graph/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	deps := map[string]handler.Pinger{"redis": c.Cache, "postgres": nil}
	if c.DB != nil {
		deps["postgres"] = c.DB
	}

	reg := &routes.Registry{
		Health:       handler.NewHealthHandler(deps),
		Skills:       handler.NewSkillHandler(c.Skills),
		Jobs:         handler.NewJobScoreHandler(c.Scoring),
		LearningPath: handler.NewLearningPathHandler(c.LearningPaths),
		WS:           ws.NewHandler(c.Hub, c.Logger),
	}
	reg.Register(f)

	return &App{Fiber: f}
}

// Bootstrap wires the container, starts the websocket hub and returns the
// app plus a cleanup that stops both.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	ctx, cancel := context.WithCancel(context.Background())

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	go c.Hub.Run(ctx)

	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
