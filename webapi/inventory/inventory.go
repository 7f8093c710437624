// Package inventory serves stock records.
package inventory

import (
	"github.com/amirasaad/storefront/pkg/config"
	authsvc "github.com/amirasaad/storefront/pkg/service/auth"
	inventorysvc "github.com/amirasaad/storefront/pkg/service/inventory"
	"github.com/amirasaad/storefront/webapi/common"
	"github.com/amirasaad/storefront/webapi/middleware"
	"github.com/gofiber/fiber/v2"
)

func Routes(app fiber.Router, svc *inventorysvc.Service, authSvc *authsvc.Service, cfg *config.Jwt) {
	g := app.Group("/inventories", middleware.JwtProtected(cfg), middleware.RequireAdmin(authSvc))
	g.Get("/", ListInventories(svc))
	g.Post("/:productId", CreateInventory(svc))
	g.Get("/:productId", GetInventory(svc))
	g.Put("/:productId", UpdateInventory(svc))
	g.Patch("/:productId/quantity", AdjustQuantity(svc))
	g.Delete("/:productId", DeleteInventory(svc))
}

// CreateInventory opens the stock record of a product.
// @Summary Create inventory
// @Tags inventories
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body CreateInventoryInput true "Initial stock"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /inventories/{productId} [post]
// @Security Bearer
func CreateInventory(svc *inventorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateInventoryInput](c)
		if input == nil {
			return err
		}
		inv, err := svc.Create(c.UserContext(), c.Params("productId"), input.Quantity, input.Location)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create inventory", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Inventory created", inv)
	}
}

// ListInventories returns one page of stock records.
// @Summary List inventories
// @Tags inventories
// @Produce json
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size"
// @Success 200 {object} common.Response
// @Router /inventories [get]
// @Security Bearer
func ListInventories(svc *inventorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := common.Pagination(c)
		items, total, err := svc.List(c.UserContext(), page, limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list inventories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Inventories", common.Page{
			Items: items,
			Total: total,
			Page:  page,
			Limit: limit,
		})
	}
}

// GetInventory returns the stock record of a product.
// @Summary Get inventory
// @Tags inventories
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /inventories/{productId} [get]
// @Security Bearer
func GetInventory(svc *inventorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, err := svc.Get(c.UserContext(), c.Params("productId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get inventory", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Inventory found", inv)
	}
}

// UpdateInventory overwrites quantity or location.
// @Summary Update inventory
// @Tags inventories
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body UpdateInventoryInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /inventories/{productId} [put]
// @Security Bearer
func UpdateInventory(svc *inventorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateInventoryInput](c)
		if input == nil {
			return err
		}
		inv, err := svc.Update(c.UserContext(), c.Params("productId"), input.Quantity, input.Location)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update inventory", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Inventory updated", inv)
	}
}

// AdjustQuantity adds a signed delta to the stock.
// @Summary Adjust stock
// @Tags inventories
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body AdjustQuantityInput true "Signed delta"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /inventories/{productId}/quantity [patch]
// @Security Bearer
func AdjustQuantity(svc *inventorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AdjustQuantityInput](c)
		if input == nil {
			return err
		}
		inv, err := svc.UpdateQuantity(c.UserContext(), c.Params("productId"), input.Delta)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't adjust stock", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stock adjusted", inv)
	}
}

// DeleteInventory removes the stock record of a product.
// @Summary Delete inventory
// @Tags inventories
// @Param productId path string true "Product ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /inventories/{productId} [delete]
// @Security Bearer
func DeleteInventory(svc *inventorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("productId")); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete inventory", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Inventory deleted", nil)
	}
}
