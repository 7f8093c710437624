// Package testutils builds a fully wired HTTP app on mocked repositories for
// handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	infraeventbus "github.com/amirasaad/storefront/infra/eventbus"
	"github.com/amirasaad/storefront/internal/fixtures/mocks"
	"github.com/amirasaad/storefront/pkg/app"
	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/amirasaad/storefront/webapi"
	"github.com/amirasaad/storefront/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

// APITestSuite serves requests through the real routes and services. Only
// the repositories are mocked.
type APITestSuite struct {
	suite.Suite
	App           *app.App
	Fiber         *fiber.App
	Bus           *infraeventbus.MemoryEventBus
	Users         *mocks.UserRepository
	Products      *mocks.ProductRepository
	Inventories   *mocks.InventoryRepository
	Notifications *mocks.NotificationRepository
}

// SetupTest builds fresh mocks and a fresh app for every test.
func (s *APITestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Bus = infraeventbus.NewWithMemory(logger)
	s.Users = mocks.NewUserRepository(s.T())
	s.Products = mocks.NewProductRepository(s.T())
	s.Inventories = mocks.NewInventoryRepository(s.T())
	s.Notifications = mocks.NewNotificationRepository(s.T())

	cfg := &config.App{
		Env:       "test",
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Second},
		Retry:     &config.Retry{MaxAttempts: 3, Delay: time.Millisecond},
		Inventory: &config.Inventory{LowStockThreshold: 5},
	}
	s.App = app.New(&app.Deps{
		UserRepo:         s.Users,
		ProductRepo:      s.Products,
		InventoryRepo:    s.Inventories,
		NotificationRepo: s.Notifications,
		EventBus:         s.Bus,
		Logger:           logger,
	}, cfg)
	s.Fiber = webapi.SetupApp(s.App, webapi.WithGatherer(prometheus.NewRegistry()), webapi.WithoutRequestLog())
}

// TearDownTest waits for fire-and-forget listeners so that mock
// expectations are settled before they are asserted.
func (s *APITestSuite) TearDownTest() {
	s.Require().NoError(s.Bus.Close(s.T().Context()))
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *APITestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// Decode reads a Response envelope.
func (s *APITestSuite) Decode(resp *http.Response) common.Response {
	var out common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// TokenFor signs a token for u without going through login.
func (s *APITestSuite) TokenFor(u *user.User) string {
	token, err := s.App.AuthService.GenerateToken(u)
	s.Require().NoError(err)
	return token
}

// NewUser returns a persisted-looking user with the given role.
func (s *APITestSuite) NewUser(role user.Role) *user.User {
	u, err := user.NewUser("ada", "ada@example.com", "password123")
	s.Require().NoError(err)
	u.Role = role
	return u
}
