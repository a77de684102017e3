package main

import (
	"fmt"
	"os"
	"time"

	"speccard-service/internal/cache"
	"speccard-service/internal/handlers"
	"speccard-service/internal/layout"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Get port from environment or default
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Initialize asset caches
	cache.Init()

	// A broken size table is a deploy error, not a runtime surprise
	if err := layout.ValidateConfigs(); err != nil {
		fmt.Printf("invalid layout configuration: %v\n", err)
		os.Exit(1)
	}

	// Create Fiber app with optimized config
	app := fiber.New(fiber.Config{
		Prefork:      false,
		ServerHeader: "SpecCard-Service",
		AppName:      "Spec Card PDF Generator v1.0.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    50 * 1024 * 1024, // 50MB max body size for batch requests
		Concurrency:  256 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	// CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	setupRoutes(app)

	// Start server
	fmt.Printf("Spec Card Service starting on port %s\n", port)

	if err := app.Listen(":" + port); err != nil {
		fmt.Printf("Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

func setupRoutes(app *fiber.App) {
	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Spec Card PDF Generator",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	app.Get("/health", handlers.HealthCheck)

	// API routes
	api := app.Group("/api")

	// Card layout + rendering
	api.Post("/card/layout", handlers.BuildLayout)
	api.Post("/card/pdf", handlers.GeneratePDF)
	api.Post("/card/batch", handlers.GeneratePDFBatch)

	// Vocabulary for selection UIs
	api.Get("/brands", handlers.ListBrands)

	// Asset management
	api.Post("/assets/preload", handlers.PreloadAssets)
	api.Post("/assets/thumbnail", handlers.GenerateThumbnail)

	// Cache management
	api.Get("/cache/stats", handlers.GetCacheStats)
	api.Post("/cache/clear", handlers.ClearCache)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error": "Not found",
			"path":  c.Path(),
		})
	})
}
