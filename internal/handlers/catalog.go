package handlers

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cacti/internal/models"
)

// CatalogHandler serves the public catalog pages.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

type cactusListItem struct {
	ID              uint
	Name            string
	ImagePath       string
	DifficultyLabel string
}

// Index lists all cacti, optionally filtered by the coded difficulty value.
func (h *CatalogHandler) Index(c *fiber.Ctx) error {
	difficulty := c.Query("difficulty")

	query := h.db.Order("id")
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var cacti []models.Cactus
	if err := query.Find(&cacti).Error; err != nil {
		return err
	}

	items := make([]cactusListItem, len(cacti))
	for i, cactus := range cacti {
		items[i] = cactusListItem{
			ID:        cactus.ID,
			Name:      cactus.Name,
			ImagePath: cactus.ImagePath(),
		}
		if cactus.Difficulty != nil {
			items[i].DifficultyLabel = cactus.Difficulty.Label()
		}
	}

	return c.Render("index", fiber.Map{
		"Cacti":    items,
		"Choices":  models.DifficultyChoices,
		"Selected": difficulty,
	})
}

type productView struct {
	Name      string
	ImagePath string
}

// Detail renders a single cactus page with its related products.
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusNotFound, "cactus not found")
	}

	var cactus models.Cactus
	if err := h.db.Preload("Products").First(&cactus, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "cactus not found")
		}
		return err
	}

	products := make([]productView, len(cactus.Products))
	for i, p := range cactus.Products {
		products[i] = productView{Name: p.Name, ImagePath: p.ImagePath()}
	}

	label := ""
	if cactus.Difficulty != nil {
		label = cactus.Difficulty.Label()
	}

	return c.Render("detail", fiber.Map{
		"Name":            cactus.Name,
		"ImagePath":       cactus.ImagePath(),
		"DifficultyLabel": label,
		// Descriptions come from the admin rich-text editor and are
		// rendered as HTML, not escaped text.
		"Description": template.HTML(cactus.Description),
		"Products":    products,
	})
}
