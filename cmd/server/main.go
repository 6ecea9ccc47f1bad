package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/cacti/internal/config"
	"github.com/example/cacti/internal/database"
	"github.com/example/cacti/internal/media"
	"github.com/example/cacti/internal/routes"
	"github.com/example/cacti/internal/seed"
	"github.com/example/cacti/internal/web"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	store := media.NewStore(cfg.MediaDir)
	if err := store.EnsureDir(); err != nil {
		log.Fatalf("failed to create media directory: %v", err)
	}

	if err := seed.Ensure(db); err != nil {
		log.Fatalf("failed to seed default admin: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Cacti Catalog",
		Views:   web.Engine(),
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, store)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
