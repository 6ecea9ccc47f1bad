package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cacti/internal/admin"
	"github.com/example/cacti/internal/config"
	"github.com/example/cacti/internal/handlers"
	"github.com/example/cacti/internal/media"
	"github.com/example/cacti/internal/middleware"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, store *media.Store) {
	catalogHandler := handlers.NewCatalogHandler(db)
	likeHandler := handlers.NewLikeHandler(db)
	authHandler := handlers.NewAuthHandler(db, cfg)
	adminHandler := admin.NewHandler(db, store, admin.Resources())

	app.Use(middleware.LoadIdentity(cfg, db))

	// Public site
	app.Get("/", catalogHandler.Index)
	app.Get("/route/:id", catalogHandler.Detail)
	app.Get("/cacti/:id", catalogHandler.Detail)

	// Likes API
	api := app.Group("/api")
	api.Get("/likes/cactus/:id", likeHandler.CactusLikes)
	api.Post("/likes/cactus", likeHandler.CreateCactusLike)

	// Static assets, uploaded media and thumbnails included
	app.Static("/static", cfg.StaticDir)

	// Admin back-office
	adm := app.Group("/admin")
	adm.Get("/login", authHandler.LoginPage)
	adm.Post("/login", authHandler.Login)
	adm.Get("/register", authHandler.RegisterPage)
	adm.Post("/register", authHandler.Register)
	adm.Get("/logout", authHandler.Logout)

	gated := adm.Group("", middleware.RequireSuperuser())
	gated.Get("/", adminHandler.Dashboard)
	gated.Get("/:resource", adminHandler.List)
	gated.Get("/:resource/new", adminHandler.NewForm)
	gated.Post("/:resource/new", adminHandler.Create)
	gated.Get("/:resource/:id/edit", adminHandler.EditForm)
	gated.Post("/:resource/:id/edit", adminHandler.Update)
	gated.Post("/:resource/:id/delete", adminHandler.Delete)
}
