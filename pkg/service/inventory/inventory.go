// Package inventory manages per-product stock records.
package inventory

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/amirasaad/storefront/pkg/eventbus"
	repo "github.com/amirasaad/storefront/pkg/repository/inventory"
	"github.com/amirasaad/storefront/pkg/utils"
	"github.com/google/uuid"
)

// Service provides business logic for inventory records.
type Service struct {
	repo      repo.Repository
	bus       eventbus.Publisher
	threshold int
	logger    *slog.Logger
}

// New creates an inventory Service. A non-positive threshold falls back to
// inventory.DefaultLowStockThreshold.
func New(
	r repo.Repository,
	bus eventbus.Publisher,
	threshold int,
	logger *slog.Logger,
) *Service {
	if threshold <= 0 {
		threshold = inventory.DefaultLowStockThreshold
	}
	return &Service{repo: r, bus: bus, threshold: threshold, logger: logger}
}

// Threshold returns the quantity under which stock counts as low.
func (s *Service) Threshold() int {
	return s.threshold
}

// Create adds the stock record of a product. A product has at most one.
func (s *Service) Create(
	ctx context.Context,
	productID string,
	quantity int,
	location string,
) (*inventory.Inventory, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByProduct(ctx, pid)
	if err != nil && !errors.Is(err, inventory.ErrInventoryNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, inventory.ErrInventoryAlreadyExists
	}
	inv, err := inventory.New(pid, quantity, location)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.logger.Info("Inventory created", "product_id", productID, "quantity", quantity)
	return inv, nil
}

// Get returns the stock record of a product.
func (s *Service) Get(ctx context.Context, productID string) (*inventory.Inventory, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByProduct(ctx, pid)
}

// List returns one page of stock records and the total count.
func (s *Service) List(ctx context.Context, page, limit int) ([]*inventory.Inventory, int64, error) {
	limit, offset := utils.Offset(page, limit)
	return s.repo.List(ctx, limit, offset)
}

// Update overwrites the set fields of a stock record.
func (s *Service) Update(
	ctx context.Context,
	productID string,
	quantity *int,
	location *string,
) (*inventory.Inventory, error) {
	inv, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity != nil {
		if *quantity < 0 {
			return nil, domain.Invalid("quantity cannot be negative")
		}
		inv.Quantity = *quantity
	}
	if location != nil {
		inv.Location = strings.TrimSpace(*location)
	}
	inv.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateQuantity adds delta to the stock of a product. A removal that would
// drive stock below zero fails with inventory.ErrInsufficientStock. When the
// resulting quantity is under the threshold a stockLow event is published.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, delta int) (*inventory.Inventory, error) {
	log := s.logger.With("context", "UpdateQuantity", "product_id", productID, "delta", delta)
	inv, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := inv.Adjust(delta); err != nil {
		log.Warn("Stock adjustment rejected", "quantity", inv.Quantity, "error", err)
		return nil, err
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		log.Error("Failed to persist stock adjustment", "error", err)
		return nil, err
	}
	if inv.IsLow(s.threshold) {
		if err := s.bus.Publish(ctx, events.NewStockLow(productID)); err != nil {
			log.Warn("Failed to publish stockLow", "error", err)
		}
	}
	return inv, nil
}

// Delete removes the stock record of a product.
func (s *Service) Delete(ctx context.Context, productID string) error {
	pid, err := parseProductID(productID)
	if err != nil {
		return err
	}
	return s.repo.DeleteByProduct(ctx, pid)
}

func parseProductID(productID string) (uuid.UUID, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return uuid.Nil, domain.Invalid("invalid product id %q", productID)
	}
	return pid, nil
}
