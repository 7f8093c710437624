// Package notification serves the inbox of the current user.
package notification

import (
	"github.com/amirasaad/storefront/pkg/config"
	authsvc "github.com/amirasaad/storefront/pkg/service/auth"
	notificationsvc "github.com/amirasaad/storefront/pkg/service/notification"
	"github.com/amirasaad/storefront/webapi/common"
	"github.com/amirasaad/storefront/webapi/middleware"
	"github.com/gofiber/fiber/v2"
)

func Routes(app fiber.Router, svc *notificationsvc.Service, authSvc *authsvc.Service, cfg *config.Jwt) {
	protected := middleware.JwtProtected(cfg)
	app.Get("/notifications", protected, ListNotifications(svc, authSvc))
	app.Patch("/notifications/:id/read", protected, MarkAsRead(svc, authSvc))
}

func callerID(c *fiber.Ctx, authSvc *authsvc.Service) (string, error) {
	token, ok := middleware.Token(c)
	if !ok {
		return "", common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
	}
	id, err := authSvc.GetCurrentUserID(token)
	if err != nil {
		return "", common.ProblemDetailsJSON(c, "Unauthorized", err)
	}
	return id.String(), nil
}

// ListNotifications returns the caller's notifications, newest first.
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /notifications [get]
// @Security Bearer
func ListNotifications(svc *notificationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c, authSvc)
		if userID == "" {
			return err
		}
		page, limit := common.Pagination(c)
		items, err := svc.ListForUser(c.UserContext(), userID, page, limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications", items)
	}
}

// MarkAsRead flags one of the caller's notifications as read.
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /notifications/{id}/read [patch]
// @Security Bearer
func MarkAsRead(svc *notificationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c, authSvc)
		if userID == "" {
			return err
		}
		n, err := svc.MarkAsRead(c.UserContext(), userID, c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update notification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification read", n)
	}
}
