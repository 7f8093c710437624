// Package middleware guards routes with JWT authentication and role checks.
package middleware

import (
	"errors"

	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the Locals key the validated token is stored under.
const TokenKey = "user"

// JwtProtected rejects requests without a valid HS256 bearer token.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   TokenKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return common.ProblemDetailsJSON(c, "Missing or malformed JWT", err, fiber.StatusBadRequest)
	}
	return common.ProblemDetailsJSON(c, "Invalid or expired JWT", err, fiber.StatusUnauthorized)
}

// Token returns the validated token of the request, if any.
func Token(c *fiber.Ctx) (*jwt.Token, bool) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	return token, ok && token != nil
}

// AdminChecker decides whether a token carries the admin role.
type AdminChecker interface {
	IsAdmin(token *jwt.Token) bool
}

// RequireAdmin must run after JwtProtected.
func RequireAdmin(checker AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := Token(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		if !checker.IsAdmin(token) {
			return common.ProblemDetailsJSON(c, "Forbidden", domain.ErrForbidden, "admin role required")
		}
		return c.Next()
	}
}
