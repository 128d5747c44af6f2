package app

import (
	"time"

	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// Options configures the HTTP application.
type Options struct {
	Name string
	// Ping reports whether the store is reachable. Nil means there is nothing to check.
	Ping func() error
}

// New builds the Fiber application with every route registered under /api.
func New(productService *services.ProductService, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	api := app.Group("/api")
	handlers.NewProductHandler(productService).RegisterRoutes(api)
	handlers.NewDemoHandler().RegisterRoutes(api)

	app.Get("/health", healthHandler(opts.Ping))

	return app
}

func healthHandler(ping func() error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database, code := "healthy", "up", fiber.StatusOK
		if ping != nil {
			if err := ping(); err != nil {
				log.Warn().Err(err).Msg("health check: database unreachable")
				status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
