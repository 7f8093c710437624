// Package common holds the response envelopes and request helpers shared by
// the HTTP handlers.
package common

import (
	"errors"
	"strconv"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/amirasaad/storefront/pkg/domain/notification"
	"github.com/amirasaad/storefront/pkg/domain/product"
	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/amirasaad/storefront/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// Page wraps one page of a listing.
type Page struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemDetailsJSON writes an RFC 9457 problem. The status is derived from
// err unless opts carries an int. A string in opts replaces the detail and
// any other value is reported under errors.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, opts ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   ErrorToStatusCode(err),
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, opt := range opts {
		switch v := opt.(type) {
		case int:
			pd.Status = v
		case string:
			pd.Detail = v
		default:
			pd.Errors = v
		}
	}
	return c.Status(pd.Status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, inventory.ErrInventoryNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, user.ErrUserAlreadyExists),
		errors.Is(err, product.ErrProductAlreadyExists),
		errors.Is(err, inventory.ErrInventoryAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, inventory.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, user.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// On failure the problem response is already written and the returned
// pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		}
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest, fields)
	}
	return &input, nil
}

// Pagination reads the page and limit query parameters and clamps them the
// way the services do.
func Pagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	rawLimit, _ := strconv.Atoi(c.Query("limit"))
	limit, _ = utils.Offset(page, rawLimit)
	return page, limit
}
