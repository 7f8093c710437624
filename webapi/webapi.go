// Package webapi provides the HTTP surface of the storefront. It is
// organized into sub-packages per resource:
// - auth: sign-up and login
// - user: profile endpoints
// - product: catalog endpoints
// - inventory: stock endpoints
// - notification: the inbox of the current user
package webapi

import (
	"strings"
	"time"

	"github.com/amirasaad/storefront/pkg/app"
	authweb "github.com/amirasaad/storefront/webapi/auth"
	"github.com/amirasaad/storefront/webapi/common"
	inventoryweb "github.com/amirasaad/storefront/webapi/inventory"
	notificationweb "github.com/amirasaad/storefront/webapi/notification"
	productweb "github.com/amirasaad/storefront/webapi/product"
	userweb "github.com/amirasaad/storefront/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type options struct {
	gatherer       prometheus.Gatherer
	limiterStorage fiber.Storage
	requestLog     bool
}

// Option customizes SetupApp.
type Option func(*options)

// WithGatherer serves the given registry at /metrics instead of the default
// one.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) { o.gatherer = g }
}

// WithLimiterStorage shares rate limit counters through s.
func WithLimiterStorage(s fiber.Storage) Option {
	return func(o *options) { o.limiterStorage = s }
}

// WithoutRequestLog disables the access log middleware.
func WithoutRequestLog() Option {
	return func(o *options) { o.requestLog = false }
}

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App, opts ...Option) *fiber.App {
	o := options{gatherer: prometheus.DefaultGatherer, requestLog: true}
	for _, opt := range opts {
		opt(&o)
	}

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	maxRequests, window := 100, time.Minute
	if rl := a.Config.RateLimit; rl != nil {
		maxRequests, window = rl.MaxRequests, rl.Window
	}
	fiberApp.Use(limiter.New(limiter.Config{
		Max:          maxRequests,
		Expiration:   window,
		Storage:      o.limiterStorage,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", fiber.ErrTooManyRequests, "rate limit exceeded")
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))
	fiberApp.Use(recover.New())
	if o.requestLog {
		fiberApp.Use(logger.New())
	}

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Storefront API is running! 🚀")
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{})))

	jwtCfg := a.Config.Auth.Jwt
	authweb.Routes(fiberApp, a.AuthService, a.UserService)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, jwtCfg)
	productweb.Routes(fiberApp, a.ProductService, a.AuthService, jwtCfg)
	inventoryweb.Routes(fiberApp, a.InventoryService, a.AuthService, jwtCfg)
	notificationweb.Routes(fiberApp, a.NotificationService, a.AuthService, jwtCfg)
	return fiberApp
}

// clientIP keys the limiter by the first X-Forwarded-For hop, then
// X-Real-IP, then the peer address.
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
