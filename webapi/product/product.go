// Package product serves the catalog.
package product

import (
	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/domain/product"
	authsvc "github.com/amirasaad/storefront/pkg/service/auth"
	productsvc "github.com/amirasaad/storefront/pkg/service/product"
	"github.com/amirasaad/storefront/webapi/common"
	"github.com/amirasaad/storefront/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func Routes(app fiber.Router, productSvc *productsvc.Service, authSvc *authsvc.Service, cfg *config.Jwt) {
	admin := []fiber.Handler{middleware.JwtProtected(cfg), middleware.RequireAdmin(authSvc)}

	app.Get("/products", ListProducts(productSvc))
	app.Get("/products/:id", GetProduct(productSvc))
	app.Post("/products", append(admin, CreateProduct(productSvc, authSvc))...)
	app.Put("/products/:id", append(admin, UpdateProduct(productSvc))...)
	app.Patch("/products/:id/publish", append(admin, PublishProduct(productSvc))...)
	app.Delete("/products/:id", append(admin, DeleteProduct(productSvc))...)
}

// CreateProduct adds a draft product owned by the caller.
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param request body CreateProductInput true "Product data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /products [post]
// @Security Bearer
func CreateProduct(productSvc *productsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateProductInput](c)
		if input == nil {
			return err
		}
		token, _ := middleware.Token(c)
		callerID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		p, err := productSvc.Create(c.UserContext(), productsvc.CreateParams{
			Name:        input.Name,
			Description: input.Description,
			Category:    input.Category,
			PriceCents:  input.PriceCents,
			CreatedBy:   callerID.String(),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create product", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Product created", p)
	}
}

// ListProducts returns one page of products.
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size"
// @Param name query string false "Name contains"
// @Param category query string false "Exact category"
// @Param status query string false "draft or published"
// @Success 200 {object} common.Response
// @Router /products [get]
func ListProducts(productSvc *productsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := common.Pagination(c)
		filter := product.Filter{
			Name:     c.Query("name"),
			Category: c.Query("category"),
			Status:   product.Status(c.Query("status")),
		}
		items, total, err := productSvc.List(c.UserContext(), filter, page, limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list products", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Products", common.Page{
			Items: items,
			Total: total,
			Page:  page,
			Limit: limit,
		})
	}
}

// GetProduct returns a product by ID.
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /products/{id} [get]
func GetProduct(productSvc *productsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := productSvc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get product", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Product found", p)
	}
}

// UpdateProduct patches a product.
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body UpdateProductInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /products/{id} [put]
// @Security Bearer
func UpdateProduct(productSvc *productsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateProductInput](c)
		if input == nil {
			return err
		}
		p, err := productSvc.Update(c.UserContext(), c.Params("id"), product.Patch{
			Name:        input.Name,
			Description: input.Description,
			Category:    input.Category,
			PriceCents:  input.PriceCents,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update product", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Product updated", p)
	}
}

// PublishProduct makes a draft product visible.
// @Summary Publish product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /products/{id}/publish [patch]
// @Security Bearer
func PublishProduct(productSvc *productsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := productSvc.PublishProduct(c.UserContext(), c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't publish product", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Product published", p)
	}
}

// DeleteProduct removes a product after its cleanup listeners settle. A
// failed cleanup is reported in the payload but does not fail the request.
// @Summary Delete product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /products/{id} [delete]
// @Security Bearer
func DeleteProduct(productSvc *productsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		outcomes, err := productSvc.Delete(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete product", err)
		}
		resp := DeleteProductResponse{ProductID: id, Cleanup: make([]CleanupResult, 0, len(outcomes))}
		for _, out := range outcomes {
			r := CleanupResult{OK: out.OK()}
			if cause := out.Cause(); cause != nil {
				log.Warnf("Cleanup for product %s failed: %v", id, cause)
				r.Error = cause.Error()
			}
			resp.Cleanup = append(resp.Cleanup, r)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Product deleted", resp)
	}
}
