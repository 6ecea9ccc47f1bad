package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cacti/internal/models"
	"github.com/example/cacti/internal/seed"
)

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, seed.Ensure(db))

	resp := postForm(t, app, "/admin/login", url.Values{
		"email":    {seed.DefaultAdminEmail},
		"password": {"password"},
	})

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/", resp.Header.Get("Location"))

	cookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, "admin_session=")
}

func TestLoginHonorsNextParameter(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, seed.Ensure(db))

	resp := postForm(t, app, "/admin/login", url.Values{
		"email":    {seed.DefaultAdminEmail},
		"password": {"password"},
		"next":     {"/admin/cacti"},
	})

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/cacti", resp.Header.Get("Location"))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, seed.Ensure(db))

	resp := postForm(t, app, "/admin/login", url.Values{
		"email":    {seed.DefaultAdminEmail},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Set-Cookie"))
}

func TestLoginUpdatesBookkeeping(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, seed.Ensure(db))

	for i := 0; i < 2; i++ {
		resp := postForm(t, app, "/admin/login", url.Values{
			"email":    {seed.DefaultAdminEmail},
			"password": {"password"},
		})
		require.Equal(t, http.StatusFound, resp.StatusCode)
	}

	var user models.User
	require.NoError(t, db.Where("email = ?", seed.DefaultAdminEmail).First(&user).Error)
	assert.Equal(t, 2, user.LoginCount)
	assert.NotNil(t, user.CurrentLoginAt)
	assert.NotNil(t, user.LastLoginAt)
}

func TestRegisterCreatesRolelessUser(t *testing.T) {
	app, db := newTestApp(t)

	resp := postForm(t, app, "/admin/register", url.Values{
		"email":    {"new@me.com"},
		"password": {"longenough"},
	})

	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Preload("Roles").Where("email = ?", "new@me.com").First(&user).Error)
	assert.True(t, user.Active)
	assert.Empty(t, user.Roles)
	assert.NotEmpty(t, user.Uniquifier)
	assert.NotEqual(t, "longenough", user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, seed.Ensure(db))

	resp := postForm(t, app, "/admin/register", url.Values{
		"email":    {seed.DefaultAdminEmail},
		"password": {"whatever"},
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogoutClearsCookie(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/logout", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "admin_session=")
}
