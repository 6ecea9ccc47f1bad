package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cacti/internal/config"
	"github.com/example/cacti/internal/middleware"
	"github.com/example/cacti/internal/models"
	"github.com/example/cacti/internal/utils"
)

// AuthHandler serves the admin login and registration pages.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("admin/login", fiber.Map{
		"Next": c.Query("next"),
	})
}

// Login authenticates the posted credentials, updates the login
// bookkeeping columns and issues the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	next := c.FormValue("next")

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return h.loginFailed(c, next)
		}
		return err
	}

	if !utils.CheckPassword(user.Password, password) {
		return h.loginFailed(c, next)
	}

	now := time.Now()
	user.LastLoginAt = user.CurrentLoginAt
	user.LastLoginIP = user.CurrentLoginIP
	user.CurrentLoginAt = &now
	user.CurrentLoginIP = c.IP()
	user.LoginCount++
	if err := h.db.Save(&user).Error; err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Uniquifier, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  now.Add(h.cfg.TokenExpires),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	if next == "" {
		next = "/admin/"
	}
	return c.Redirect(next)
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, next string) error {
	return c.Status(fiber.StatusUnauthorized).Render("admin/login", fiber.Map{
		"Next":  next,
		"Error": "invalid email or password",
	})
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return c.Render("admin/register", fiber.Map{})
}

// Register creates a new account. Fresh accounts are active but hold no
// roles, so the admin gate still answers 403 until a superuser grants one.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).Render("admin/register", fiber.Map{
			"Error": "email and password are required",
		})
	}

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).Render("admin/register", fiber.Map{
			"Error": "an account with this email already exists",
		})
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	now := time.Now()
	user := models.User{
		Email:       email,
		Password:    hash,
		Active:      true,
		ConfirmedAt: &now,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	return c.Redirect("/admin/login")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/admin/login")
}
