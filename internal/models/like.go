package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// LikeTarget names an entity type a Like may point at.
type LikeTarget string

// TargetCactus is the only target the public API exposes today.
const TargetCactus LikeTarget = "cactus"

// Like is an unauthenticated, uncapped approval marker against a target
// record identified by (ObjectType, ObjectID). No foreign key is declared,
// so rows may outlive their target.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ObjectType LikeTarget `gorm:"size:255" json:"object_type"`
	ObjectID   uint       `json:"object_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Like) TableName() string { return "like" }

// Resolve loads the record the like points at. One explicit branch per
// target type; unknown types are an error rather than a reflective lookup.
func (l *Like) Resolve(db *gorm.DB) (interface{}, error) {
	switch l.ObjectType {
	case TargetCactus:
		var cactus Cactus
		if err := db.First(&cactus, l.ObjectID).Error; err != nil {
			return nil, err
		}
		return &cactus, nil
	default:
		return nil, fmt.Errorf("unknown like target %q", l.ObjectType)
	}
}

// CountLikes counts like rows pointing at the given target record.
func CountLikes(db *gorm.DB, target LikeTarget, id uint) (int64, error) {
	var count int64
	err := db.Model(&Like{}).
		Where("object_type = ? AND object_id = ?", target, id).
		Count(&count).Error
	return count, err
}
