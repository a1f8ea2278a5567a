package handlers

import (
	"strings"
	"time"

	"portal/internal/config"
	"portal/internal/middleware"
	"portal/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Deps are the services the HTTP layer dispatches to.
type Deps struct {
	Auth  *services.AuthService
	Tiles *services.TileService
}

// NewApp builds the Fiber app with middleware and every route registered.
func NewApp(cfg *config.Config, deps Deps, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "entry-portal",
		BodyLimit: 10 * 1024 * 1024,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions,
		}, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	auth := middleware.AuthRequired(deps.Auth)

	// --- API Routes ---
	api := app.Group("/api")
	NewTileHandler(deps.Tiles, log).RegisterRoutes(api, auth)
	NewAuthHandler(deps.Auth, log).RegisterRoutes(api, auth)
	NewUploadHandler(cfg.UploadDir, cfg.PublicBaseURL, log).RegisterRoutes(app, api, auth)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
