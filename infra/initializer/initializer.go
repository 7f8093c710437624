// Package initializer connects the stores and builds the process-wide
// dependencies from configuration.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/storefront/infra"
	"github.com/amirasaad/storefront/infra/cache"
	infraeventbus "github.com/amirasaad/storefront/infra/eventbus"
	inframetrics "github.com/amirasaad/storefront/infra/metrics"
	inventoryrepo "github.com/amirasaad/storefront/infra/repository/inventory"
	notificationrepo "github.com/amirasaad/storefront/infra/repository/notification"
	productrepo "github.com/amirasaad/storefront/infra/repository/product"
	userrepo "github.com/amirasaad/storefront/infra/repository/user"
	"github.com/amirasaad/storefront/pkg/app"
	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/handler/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// Resources holds what InitializeDependencies opened. Close releases it.
type Resources struct {
	Deps     *app.Deps
	Bus      *infraeventbus.MemoryEventBus
	Redis    *redis.Client
	Registry *prometheus.Registry

	closers []func(context.Context) error
}

// Close drains in-flight handlers first, then closes the stores in reverse
// order of opening.
func (r *Resources) Close(ctx context.Context) error {
	var errs []error
	if r.Bus != nil {
		if err := r.Bus.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (*Resources, error) {
	logger := setupLogger(cfg.Log)
	return initialize(context.Background(), cfg, logger)
}

func initialize(ctx context.Context, cfg *config.App, logger *slog.Logger) (*Resources, error) {
	res := &Resources{Registry: prometheus.NewRegistry()}
	ready := false
	defer func() {
		if !ready {
			_ = res.Close(ctx)
		}
	}()

	res.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := inframetrics.NewPrometheus(res.Registry)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	res.closers = append(res.closers, func(context.Context) error { return sqlDB.Close() })
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	mongoClient, err := infra.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("Failed to initialize MongoDB", "error", err)
		return nil, err
	}
	res.closers = append(res.closers, mongoClient.Disconnect)
	notifications, err := infra.NotificationCollection(ctx, mongoClient, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}

	tracker, err := initTracker(ctx, cfg, res, logger)
	if err != nil {
		return nil, err
	}

	res.Bus = infraeventbus.NewWithMemory(logger, infraeventbus.WithMetrics(recorder))
	res.Deps = &app.Deps{
		UserRepo:         userrepo.New(db),
		ProductRepo:      productrepo.New(db),
		InventoryRepo:    inventoryrepo.New(db),
		NotificationRepo: notificationrepo.New(notifications),
		EventBus:         res.Bus,
		Tracker:          tracker,
		Metrics:          recorder,
		Logger:           logger,
	}
	ready = true
	return res, nil
}

// initTracker picks the Redis tracker when REDIS_URL is set and the
// in-process tracker otherwise.
func initTracker(
	ctx context.Context,
	cfg *config.App,
	res *Resources,
	logger *slog.Logger,
) (common.Tracker, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		logger.Info("Using in-memory idempotency tracker")
		return common.NewIdempotencyTracker(), nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.PoolSize)
	if err != nil {
		return nil, err
	}
	res.Redis = client
	res.closers = append(res.closers, func(context.Context) error { return client.Close() })

	var ttl time.Duration
	if cfg.Idempotency != nil {
		ttl = cfg.Idempotency.TTL
	}
	logger.Info("Using Redis idempotency tracker", "ttl", ttl)
	return cache.NewRedisTracker(client, cfg.Redis.KeyPrefix, ttl, logger), nil
}
