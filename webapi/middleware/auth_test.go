package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/storefront/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwt = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

type roleChecker struct{}

func (roleChecker) IsAdmin(token *jwt.Token) bool {
	claims, _ := token.Claims.(jwt.MapClaims)
	return claims["role"] == "admin"
}

func sign(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "42",
		"role":    role,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", JwtProtected(testJwt), func(c *fiber.Ctx) error {
		_, ok := Token(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/admin", JwtProtected(testJwt), RequireAdmin(roleChecker{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/unguarded", RequireAdmin(roleChecker{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func status(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestJwtProtected(t *testing.T) {
	t.Parallel()
	app := newApp()
	future := time.Now().Add(time.Hour)

	assert.Equal(t, fiber.StatusBadRequest, status(t, app, fiber.MethodGet, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, fiber.MethodGet, "/me", sign(t, "other", "user", future)))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, fiber.MethodGet, "/me", sign(t, testJwt.Secret, "user", time.Now().Add(-time.Hour))))
	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodGet, "/me", sign(t, testJwt.Secret, "user", future)))
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()
	app := newApp()
	future := time.Now().Add(time.Hour)

	assert.Equal(t, fiber.StatusForbidden, status(t, app, fiber.MethodDelete, "/admin", sign(t, testJwt.Secret, "user", future)))
	assert.Equal(t, fiber.StatusNoContent, status(t, app, fiber.MethodDelete, "/admin", sign(t, testJwt.Secret, "admin", future)))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, fiber.MethodGet, "/unguarded", ""))
}
