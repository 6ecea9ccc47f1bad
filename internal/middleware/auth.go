package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cacti/internal/config"
	"github.com/example/cacti/internal/models"
	"github.com/example/cacti/internal/utils"
)

const identityContextKey = "currentIdentity"

// SessionCookie is the cookie carrying the admin session token.
const SessionCookie = "admin_session"

// Identity is the capability object the access gates check. A zero
// Identity is an anonymous visitor.
type Identity struct {
	user *models.User
}

// Authenticated reports whether a user is attached to the session.
func (i *Identity) Authenticated() bool {
	return i != nil && i.user != nil
}

// Active reports whether the attached user account is enabled.
func (i *Identity) Active() bool {
	return i.Authenticated() && i.user.Active
}

// HasRole reports whether the attached user holds the named role.
func (i *Identity) HasRole(name string) bool {
	return i.Authenticated() && i.user.HasRole(name)
}

// User returns the attached user, or nil for anonymous identities.
func (i *Identity) User() *models.User {
	if i == nil {
		return nil
	}
	return i.user
}

// LoadIdentity resolves the session token (cookie or bearer header) into
// an Identity and stores it on the request context. Anonymous requests
// pass through with an empty identity.
func LoadIdentity(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := &Identity{}
		c.Locals(identityContextKey, identity)

		token := c.Cookies(SessionCookie)
		if token == "" {
			if header := c.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					token = parts[1]
				}
			}
		}
		if token == "" {
			return c.Next()
		}

		userID, uniquifier, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return c.Next()
		}

		var user models.User
		if err := db.Preload("Roles").First(&user, userID).Error; err != nil {
			return c.Next()
		}

		// A rotated uniquifier invalidates every previously issued token.
		if user.Uniquifier != uniquifier {
			return c.Next()
		}

		identity.user = &user
		return c.Next()
	}
}

// CurrentIdentity extracts the identity loaded by LoadIdentity.
func CurrentIdentity(c *fiber.Ctx) *Identity {
	if identity, ok := c.Locals(identityContextKey).(*Identity); ok {
		return identity
	}
	return &Identity{}
}

// RequireSuperuser gates admin views: anonymous visitors are redirected to
// the login page with a next parameter, authenticated users without the
// superuser role get 403.
func RequireSuperuser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)

		if identity.Active() && identity.HasRole(models.SuperuserRole) {
			return c.Next()
		}

		if identity.Authenticated() {
			return fiber.NewError(fiber.StatusForbidden, "superuser role required")
		}

		return c.Redirect("/admin/login?next=" + url.QueryEscape(c.OriginalURL()))
	}
}
