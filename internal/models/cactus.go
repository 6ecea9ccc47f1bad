package models

import (
	"time"
)

// Difficulty is the care-difficulty rating stored as a coded string.
type Difficulty string

const (
	DifficultyLow    Difficulty = "1"
	DifficultyMedium Difficulty = "2"
	DifficultyHigh   Difficulty = "3"
)

// DifficultyChoice pairs a stored code with its display label.
type DifficultyChoice struct {
	Code  Difficulty
	Label string
}

// DifficultyChoices lists every valid difficulty in display order.
var DifficultyChoices = []DifficultyChoice{
	{Code: DifficultyLow, Label: "Low"},
	{Code: DifficultyMedium, Label: "Medium"},
	{Code: DifficultyHigh, Label: "High"},
}

// Valid reports whether d is one of the known codes.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return true
	}
	return false
}

// Label returns the display label for the code, or "" for unknown codes.
func (d Difficulty) Label() string {
	for _, c := range DifficultyChoices {
		if c.Code == d {
			return c.Label
		}
	}
	return ""
}

// Cactus is the primary catalog item.
type Cactus struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:80;unique;not null" json:"name"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Image       string           `gorm:"size:128;not null" json:"image"`
	Difficulty  *Difficulty      `gorm:"size:255" json:"difficulty"`
	Products    []RelatedProduct `gorm:"foreignKey:CactusID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TableName pins the singular table name.
func (Cactus) TableName() string { return "cactus" }

// ImagePath returns the thumbnail path relative to the static root.
func (c *Cactus) ImagePath() string {
	if c.Image == "" {
		return ""
	}
	return "media/" + ThumbName(c.Image)
}

// RelatedProduct is a secondary item owned by exactly one Cactus.
type RelatedProduct struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:80;unique;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"size:128;not null" json:"image"`
	CactusID    uint      `gorm:"not null" json:"cactus_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RelatedProduct) TableName() string { return "related_product" }

// ImagePath returns the thumbnail path relative to the static root.
func (p *RelatedProduct) ImagePath() string {
	if p.Image == "" {
		return ""
	}
	return "media/" + ThumbName(p.Image)
}

// ThumbName derives the thumbnail filename for an uploaded image,
// e.g. "saguaro.jpg" -> "saguaro_thumb.jpg".
func ThumbName(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[:i] + "_thumb" + filename[i:]
		}
		if filename[i] == '/' {
			break
		}
	}
	return filename + "_thumb"
}
