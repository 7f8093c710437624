// Package app composes the services and wires the event listeners onto the
// shared bus.
package app

import (
	"log/slog"

	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/eventbus"
	"github.com/amirasaad/storefront/pkg/handler/common"
	"github.com/amirasaad/storefront/pkg/metrics"
	inventoryrepo "github.com/amirasaad/storefront/pkg/repository/inventory"
	notificationrepo "github.com/amirasaad/storefront/pkg/repository/notification"
	productrepo "github.com/amirasaad/storefront/pkg/repository/product"
	userrepo "github.com/amirasaad/storefront/pkg/repository/user"
	"github.com/amirasaad/storefront/pkg/retry"
	"github.com/amirasaad/storefront/pkg/service/auth"
	"github.com/amirasaad/storefront/pkg/service/inventory"
	"github.com/amirasaad/storefront/pkg/service/notification"
	"github.com/amirasaad/storefront/pkg/service/product"
	"github.com/amirasaad/storefront/pkg/service/user"
)

// Deps contains the infrastructure the application is built from.
type Deps struct {
	UserRepo         userrepo.Repository
	ProductRepo      productrepo.Repository
	InventoryRepo    inventoryrepo.Repository
	NotificationRepo notificationrepo.Repository
	EventBus         eventbus.Bus
	// Tracker deduplicates listener deliveries. Nil selects an in-process
	// tracker.
	Tracker common.Tracker
	Metrics metrics.Recorder
	Logger  *slog.Logger
}

type App struct {
	Deps                *Deps
	Config              *config.App
	Executor            *retry.Executor
	AuthService         *auth.Service
	UserService         *user.Service
	ProductService      *product.Service
	InventoryService    *inventory.Service
	NotificationService *notification.Service
}

// New builds the services and registers every listener before any producer
// can publish.
func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if deps.Tracker == nil {
		deps.Tracker = common.NewIdempotencyTracker()
	}

	a := &App{
		Deps:   deps,
		Config: cfg,
	}
	a.Executor = retry.New(
		deps.Logger,
		retry.WithConfig(retryConfig(cfg)),
		retry.WithMetrics(deps.Metrics),
	)

	a.NotificationService = notification.New(deps.NotificationRepo, deps.Logger)
	a.InventoryService = inventory.New(
		deps.InventoryRepo,
		deps.EventBus,
		lowStockThreshold(cfg),
		deps.Logger,
	)
	a.setupEventBus()

	a.UserService = user.New(deps.UserRepo, deps.EventBus, deps.Logger)
	a.AuthService = auth.New(deps.UserRepo, deps.EventBus, jwtConfig(cfg), deps.Logger)
	a.ProductService = product.New(deps.ProductRepo, deps.EventBus, deps.Logger)
	return a
}

func retryConfig(cfg *config.App) retry.Config {
	if cfg == nil || cfg.Retry == nil {
		return retry.DefaultConfig()
	}
	return retry.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Delay:       cfg.Retry.Delay,
	}
}

func lowStockThreshold(cfg *config.App) int {
	if cfg == nil || cfg.Inventory == nil {
		return 0
	}
	return cfg.Inventory.LowStockThreshold
}

func jwtConfig(cfg *config.App) *config.Jwt {
	if cfg == nil || cfg.Auth == nil {
		return nil
	}
	return cfg.Auth.Jwt
}
