package handlers_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/cacti/internal/config"
	"github.com/example/cacti/internal/database"
	"github.com/example/cacti/internal/media"
	"github.com/example/cacti/internal/models"
	"github.com/example/cacti/internal/routes"
	"github.com/example/cacti/internal/web"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		StaticDir:    t.TempDir(),
		MediaDir:     t.TempDir(),
	}

	store := media.NewStore(cfg.MediaDir)
	require.NoError(t, store.EnsureDir())

	app := fiber.New(fiber.Config{Views: web.Engine()})
	routes.Register(app, db, cfg, store)

	return app, db
}

func createCactus(t *testing.T, db *gorm.DB, name string, difficulty *models.Difficulty) models.Cactus {
	t.Helper()

	cactus := models.Cactus{
		Name:        name,
		Description: "<p>" + name + " description</p>",
		Image:       name + ".jpg",
		Difficulty:  difficulty,
	}
	require.NoError(t, db.Create(&cactus).Error)
	return cactus
}

func difficultyPtr(d models.Difficulty) *models.Difficulty {
	return &d
}
