package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app around an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Config, c.Logger)
	routes.NewRegistry(c.Health, c.WS, c.API).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects to every backing service, runs migrations, starts the
// websocket hub and returns the app with a cleanup that undoes all of it.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(corsMiddleware(cfg.App.FrontendURL))
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func corsMiddleware(frontendURL string) fiber.Handler {
	origin := strings.TrimRight(strings.TrimSpace(frontendURL), "/")
	if origin == "" {
		return cors.New()
	}
	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	})
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
