package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/amirasaad/storefront/pkg/domain/notification"
	"github.com/amirasaad/storefront/pkg/domain/product"
	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{nil, fiber.StatusBadRequest},
		{user.ErrUserNotFound, fiber.StatusNotFound},
		{fmt.Errorf("get: %w", product.ErrProductNotFound), fiber.StatusNotFound},
		{inventory.ErrInventoryNotFound, fiber.StatusNotFound},
		{notification.ErrNotificationNotFound, fiber.StatusNotFound},
		{user.ErrUserAlreadyExists, fiber.StatusConflict},
		{product.ErrProductAlreadyExists, fiber.StatusConflict},
		{inventory.ErrInventoryAlreadyExists, fiber.StatusConflict},
		{inventory.ErrInsufficientStock, fiber.StatusUnprocessableEntity},
		{domain.ErrValidation, fiber.StatusBadRequest},
		{user.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{fiber.ErrTooManyRequests, fiber.StatusTooManyRequests},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ErrorToStatusCode(tc.err), "%v", tc.err)
	}
}

type signup struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
}

func newBindApp() *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[signup](c)
		if input == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "ok", input)
	})
	return app
}

func post(t *testing.T, app *fiber.App, body string) (*http.Response, ProblemDetails) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	var pd ProblemDetails
	_ = json.NewDecoder(resp.Body).Decode(&pd)
	return resp, pd
}

func TestBindAndValidate(t *testing.T) {
	t.Parallel()
	app := newBindApp()

	resp, _ := post(t, app, `{"username":"ada","email":"ada@example.com"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, pd := post(t, app, `{"username":"ad","email":"nope"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "Validation failed", pd.Title)
	assert.Len(t, pd.Errors, 2)

	resp, pd = post(t, app, `{"username":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", pd.Title)
}

func TestProblemDetailsJSON_Options(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/x?a=1", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, fiber.StatusUnauthorized, pd.Status)
	assert.Equal(t, "missing user context", pd.Detail)
	assert.Equal(t, "/x?a=1", pd.Instance)
}

func TestPagination(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, limit := Pagination(c)
		return c.JSON(fiber.Map{"page": page, "limit": limit})
	})

	for query, want := range map[string][2]int{
		"":                  {1, 20},
		"?page=3&limit=10":  {3, 10},
		"?page=-1&limit=x":  {1, 20},
		"?page=2&limit=500": {2, 100},
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+query, nil))
		require.NoError(t, err)
		var got map[string]int
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		_ = resp.Body.Close()
		assert.Equal(t, want[0], got["page"], query)
		assert.Equal(t, want[1], got["limit"], query)
	}
}
