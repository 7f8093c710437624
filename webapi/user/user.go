// Package user serves profile reads and updates.
package user

import (
	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/domain"
	authsvc "github.com/amirasaad/storefront/pkg/service/auth"
	usersvc "github.com/amirasaad/storefront/pkg/service/user"
	"github.com/amirasaad/storefront/webapi/common"
	"github.com/amirasaad/storefront/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

func Routes(app fiber.Router, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.Jwt) {
	protected := middleware.JwtProtected(cfg)
	app.Get("/user/:id", protected, GetUser(userSvc, authSvc))
	app.Put("/user/:id", protected, UpdateUser(userSvc, authSvc))
	app.Patch("/user/:id/admin", protected, middleware.RequireAdmin(authSvc), MakeAdmin(userSvc))
}

// ownID checks that the :id parameter names the caller. Admins may read any
// user.
func ownID(c *fiber.Ctx, authSvc *authsvc.Service, allowAdmin bool) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Errorf("Invalid user ID: %v", err)
		return "", common.ProblemDetailsJSON(c, "Invalid user ID", err, "User ID must be a valid UUID", fiber.StatusBadRequest)
	}
	token, ok := middleware.Token(c)
	if !ok {
		return "", common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
	}
	callerID, err := authSvc.GetCurrentUserID(token)
	if err != nil {
		log.Errorf("Failed to parse user ID from token: %v", err)
		return "", common.ProblemDetailsJSON(c, "Unauthorized", err)
	}
	if callerID != id && !(allowAdmin && authSvc.IsAdmin(token)) {
		return "", common.ProblemDetailsJSON(c, "Forbidden", domain.ErrForbidden, "You can only access your own user")
	}
	return id.String(), nil
}

// GetUser returns a Fiber handler for retrieving a user by ID.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [get]
// @Security Bearer
func GetUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ownID(c, authSvc, true)
		if id == "" {
			return err
		}
		u, err := userSvc.GetUser(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// UpdateUser updates user information.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserInput true "User update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /user/{id} [put]
// @Security Bearer
func UpdateUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}
		id, err := ownID(c, authSvc, false)
		if id == "" {
			return err
		}
		u, err := userSvc.UpdateUser(c.UserContext(), id, input.Names)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated", u)
	}
}

// MakeAdmin grants the admin role.
// @Summary Promote user to admin
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id}/admin [patch]
// @Security Bearer
func MakeAdmin(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := userSvc.MakeAdmin(c.UserContext(), c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't promote user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User promoted", u)
	}
}
