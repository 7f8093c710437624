// Package inventory keeps stock records consistent with catalog events.
package inventory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/amirasaad/storefront/pkg/eventbus"
	"github.com/amirasaad/storefront/pkg/retry"
)

// Finder looks up the stock record of a product.
type Finder interface {
	Get(ctx context.Context, productID string) (*inventory.Inventory, error)
}

// Store looks up and removes stock records.
type Store interface {
	Finder
	Delete(ctx context.Context, productID string) error
}

// HandleProductDeleted removes the stock record of a deleted product. The
// lookup and the delete form one retried unit. A product without a record
// settles successfully with a false value instead of failing the lookup, so
// repeated deliveries are no-ops.
func HandleProductDeleted(store Store, exec *retry.Executor, logger *slog.Logger) eventbus.HandlerFunc {
	logger = logger.With("handler", "ProductDeleted")
	return func(ctx context.Context, e events.Event) (any, error) {
		log := logger.With("event_type", e.Type)
		productID, err := e.EntityID()
		if err != nil {
			log.Error("❌ [ERROR] Unexpected payload", "error", err)
			return retry.Result[bool]{Err: err}, nil
		}
		log = log.With("product_id", productID)
		log.Debug("🟢 [START] Removing inventory")

		res := retry.Do(ctx, exec, "delete inventory", func(ctx context.Context) (bool, error) {
			if _, err := store.Get(ctx, productID); err != nil {
				return false, classify(err)
			}
			if err := store.Delete(ctx, productID); err != nil {
				return false, classify(err)
			}
			return true, nil
		})
		switch {
		case !res.OK():
			log.Error("❌ [ERROR] Inventory not removed", "attempts", res.Attempts, "error", res.Err)
		case res.Value:
			log.Info("✅ [SUCCESS] Inventory removed", "attempts", res.Attempts)
		default:
			log.Info("✅ [SUCCESS] No inventory to remove")
		}
		return res, nil
	}
}

// classify maps a missing record to success, unlike a strict lookup which
// would retry it, and validation failures to non-retryable errors.
func classify(err error) error {
	switch {
	case errors.Is(err, inventory.ErrInventoryNotFound):
		return nil
	case errors.Is(err, domain.ErrValidation):
		return retry.Permanent(err)
	default:
		return err
	}
}

// HandleStockLow warns when the stock of a product is strictly under
// threshold. It looks the record up once and never retries. The value
// reports whether a warning was raised.
func HandleStockLow(finder Finder, threshold int, logger *slog.Logger) eventbus.HandlerFunc {
	logger = logger.With("handler", "StockLow")
	return func(ctx context.Context, e events.Event) (any, error) {
		productID, err := e.EntityID()
		if err != nil {
			logger.Error("❌ [ERROR] Unexpected payload", "error", err)
			return retry.Result[bool]{Err: err}, nil
		}
		log := logger.With("product_id", productID)

		inv, err := finder.Get(ctx, productID)
		if errors.Is(err, inventory.ErrInventoryNotFound) {
			return retry.Result[bool]{Attempts: 1}, nil
		}
		if err != nil {
			log.Error("❌ [ERROR] Inventory lookup failed", "error", err)
			return retry.Result[bool]{Err: err, Attempts: 1}, nil
		}
		if !inv.IsLow(threshold) {
			return retry.Result[bool]{Attempts: 1}, nil
		}
		log.Warn("⚠️ [LOW STOCK] Stock is low for product",
			"quantity", inv.Quantity,
			"threshold", threshold,
		)
		return retry.Result[bool]{Value: true, Attempts: 1}, nil
	}
}

// Register attaches the inventory listeners to bus.
func Register(
	bus eventbus.Registrar,
	store Store,
	exec *retry.Executor,
	threshold int,
	logger *slog.Logger,
) {
	bus.Register(events.EventTypeProductDeleted, HandleProductDeleted(store, exec, logger))
	bus.Register(events.EventTypeStockLow, HandleStockLow(store, threshold, logger))
}
