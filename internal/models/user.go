package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuperuserRole is the role name that grants admin access.
const SuperuserRole = "superuser"

// User is an admin-panel account.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"size:255;unique;not null" json:"email"`
	Username       *string    `gorm:"size:255;unique" json:"username"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	CurrentLoginAt *time.Time `json:"current_login_at"`
	LastLoginIP    string     `gorm:"size:100" json:"last_login_ip"`
	CurrentLoginIP string     `gorm:"size:100" json:"current_login_ip"`
	LoginCount     int        `json:"login_count"`
	Active         bool       `json:"active"`
	Uniquifier     string     `gorm:"column:fs_uniquifier;size:255;unique;not null" json:"-"`
	ConfirmedAt    *time.Time `json:"confirmed_at"`
	Roles          []Role     `gorm:"many2many:roles_users;" json:"roles,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "user" }

// BeforeCreate assigns the session uniquifier token for new accounts.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Uniquifier == "" {
		u.Uniquifier = uuid.New().String()
	}
	return nil
}

// HasRole reports whether the user's loaded roles include name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Role is a named permission group, many-to-many with User.
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:80;unique" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Role) TableName() string { return "role" }
