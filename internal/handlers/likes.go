package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cacti/internal/models"
)

// LikeHandler serves the public likes counter API.
type LikeHandler struct {
	db *gorm.DB
}

// NewLikeHandler constructs LikeHandler.
func NewLikeHandler(db *gorm.DB) *LikeHandler {
	return &LikeHandler{db: db}
}

// CactusLikes returns the number of likes recorded for a cactus.
// Unknown ids simply count zero.
func (h *LikeHandler) CactusLikes(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return fiber.NewError(fiber.StatusNotFound, "not found")
	}

	count, err := models.CountLikes(h.db, models.TargetCactus, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"likes": count})
}

type createLikeRequest struct {
	PK uint `json:"pk"`
}

// CreateCactusLike records one like for the requested cactus. There is no
// deduplication and no check that the target exists; repeated posts keep
// incrementing the count.
func (h *LikeHandler) CreateCactusLike(c *fiber.Ctx) error {
	var req createLikeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	like := models.Like{
		ObjectType: models.TargetCactus,
		ObjectID:   req.PK,
	}

	if err := h.db.Create(&like).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"detail": "liked"})
}
