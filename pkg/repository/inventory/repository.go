package inventory

import (
	"context"

	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/google/uuid"
)

// Repository persists stock records, one per product.
type Repository interface {
	Create(ctx context.Context, inv *inventory.Inventory) error
	Update(ctx context.Context, inv *inventory.Inventory) error
	// GetByProduct returns inventory.ErrInventoryNotFound when the product
	// has no record.
	GetByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Inventory, error)
	List(ctx context.Context, limit, offset int) ([]*inventory.Inventory, int64, error)
	// DeleteByProduct returns inventory.ErrInventoryNotFound when nothing
	// was removed.
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
