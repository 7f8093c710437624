package product

import (
	"context"

	"github.com/amirasaad/storefront/pkg/domain/product"
	"github.com/google/uuid"
)

// Repository persists catalog products.
type Repository interface {
	Create(ctx context.Context, p *product.Product) error
	Update(ctx context.Context, p *product.Product) error
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
	GetByName(ctx context.Context, name string) (*product.Product, error)
	List(ctx context.Context, filter product.Filter, limit, offset int) ([]*product.Product, int64, error)
	// Delete returns product.ErrProductNotFound when nothing was removed.
	Delete(ctx context.Context, id uuid.UUID) error
}
