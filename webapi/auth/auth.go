// Package auth serves sign-up and login.
package auth

import (
	"errors"

	"github.com/amirasaad/storefront/pkg/domain/user"
	authsvc "github.com/amirasaad/storefront/pkg/service/auth"
	usersvc "github.com/amirasaad/storefront/pkg/service/user"
	"github.com/amirasaad/storefront/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app fiber.Router, authSvc *authsvc.Service, userSvc *usersvc.Service) {
	app.Post("/auth/signup", Signup(userSvc))
	app.Post("/auth/login", Login(authSvc))
}

// Signup registers a new user.
// @Summary Register a user
// @Description Create a user account; a welcome notification follows asynchronously
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupInput true "Account data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/signup [post]
func Signup(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SignupInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.CreateUser(c.UserContext(), input.Username, input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", u)
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate user with identity (username or email) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.UserContext(), input.Identity, input.Password)
		if errors.Is(err, user.ErrUserUnauthorized) {
			return common.ProblemDetailsJSON(c, "Invalid identity or password", err, "Identity or password is incorrect")
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
