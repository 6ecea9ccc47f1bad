package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/cacti/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Cactus{}, &models.RelatedProduct{}, &models.Like{}))
	return db
}

func TestResolveCactusTarget(t *testing.T) {
	db := newTestDB(t)

	cactus := models.Cactus{Name: "saguaro", Description: "d", Image: "s.jpg"}
	require.NoError(t, db.Create(&cactus).Error)

	like := models.Like{ObjectType: models.TargetCactus, ObjectID: cactus.ID}
	require.NoError(t, db.Create(&like).Error)

	resolved, err := like.Resolve(db)
	require.NoError(t, err)

	target, ok := resolved.(*models.Cactus)
	require.True(t, ok)
	assert.Equal(t, "saguaro", target.Name)
}

func TestResolveUnknownTargetType(t *testing.T) {
	db := newTestDB(t)

	like := models.Like{ObjectType: "comet", ObjectID: 1}
	_, err := like.Resolve(db)
	assert.Error(t, err)
}

func TestResolveDanglingLike(t *testing.T) {
	db := newTestDB(t)

	like := models.Like{ObjectType: models.TargetCactus, ObjectID: 99}
	require.NoError(t, db.Create(&like).Error)

	_, err := like.Resolve(db)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCountLikes(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Like{ObjectType: models.TargetCactus, ObjectID: 1}).Error)
	}
	require.NoError(t, db.Create(&models.Like{ObjectType: models.TargetCactus, ObjectID: 2}).Error)

	count, err := models.CountLikes(db, models.TargetCactus, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = models.CountLikes(db, models.TargetCactus, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
