package api

import (
	"errors"
	"time"

	"equiptrack/docs"
	"equiptrack/internal/api/handlers"
	"equiptrack/pkg/metrics"
	"equiptrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Imports         *handlers.ImportHandler
	Inventory       *handlers.InventoryHandler
	Recommendations *handlers.RecommendationHandler
}

type Options struct {
	// BodyLimitMB caps request bodies, uploads included.
	BodyLimitMB  int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Metrics is served on /metrics when set.
	Metrics      *metrics.Registry
}

func SetupRouter(h Handlers, opts Options, appLogger *zap.Logger) *fiber.App {
	cfg := fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	}
	cfg.ReadTimeout = opts.ReadTimeout
	cfg.WriteTimeout = opts.WriteTimeout
	if opts.BodyLimitMB > 0 {
		cfg.BodyLimit = opts.BodyLimitMB * 1024 * 1024
	}
	app := fiber.New(cfg)

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(middleware.Observe(opts.Metrics, appLogger))

	_ = docs.SwaggerInfo // registers the swagger docs with swag
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	api := app.Group("/api/v1")

	imports := api.Group("/imports")
	imports.Post("", h.Imports.UploadCSV)
	imports.Post("/records", h.Imports.ImportRecords)
	imports.Get("", h.Imports.ListImports)

	api.Get("/devices", h.Inventory.ListDevices)
	api.Get("/devices/:id", h.Inventory.GetDevice)
	api.Get("/locations", h.Inventory.ListLocations)
	api.Get("/movements", h.Inventory.ListMovements)
	api.Get("/movements/unknown.csv", h.Inventory.ExportUnknown)

	recs := api.Group("/recommendations")
	recs.Get("", h.Recommendations.ListRecommendations)
	recs.Post("/generate", h.Recommendations.Generate)
	recs.Post("/apply-all", h.Recommendations.ApplyAll)
	recs.Post("/:id/apply", h.Recommendations.Apply)

	api.Delete("/data", h.Recommendations.Reset)

	return app
}
