package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/storefront/infra/cache"
	"github.com/amirasaad/storefront/infra/initializer"
	"github.com/amirasaad/storefront/pkg/app"
	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// @title Storefront API
// @version 1.0.0
// @description Users, catalog, stock and notifications
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	res, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := res.Deps.Logger

	a := app.New(res.Deps, cfg)

	opts := []webapi.Option{webapi.WithGatherer(res.Registry)}
	if res.Redis != nil {
		opts = append(opts, webapi.WithLimiterStorage(cache.NewLimiterStorage(res.Redis, cfg.Redis.KeyPrefix)))
	}
	fiberApp := webapi.SetupApp(a, opts...)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, fiberApp, addr, res, cfg.Server.ShutdownTimeout, logger)
}

type closer interface {
	Close(ctx context.Context) error
}

// serve listens on addr until ctx is done, then stops accepting requests and
// releases res. In-flight event handlers are drained as part of res.Close.
func serve(
	ctx context.Context,
	fiberApp *fiber.App,
	addr string,
	res closer,
	timeout time.Duration,
	logger *slog.Logger,
) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- fiberApp.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		_ = res.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", timeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := res.Close(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := <-listenErr; err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
