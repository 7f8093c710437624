package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrInventoryNotFound is returned when a product has no inventory record.
	ErrInventoryNotFound = errors.New("inventory not found")
	// ErrInventoryAlreadyExists is returned when a product already has a record.
	ErrInventoryAlreadyExists = errors.New("inventory already exists for this product")
	// ErrInsufficientStock is returned when a removal would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock unit")
)

// DefaultLowStockThreshold is the quantity under which stock counts as low.
const DefaultLowStockThreshold = 5

// Inventory is the stock record of a single product.
type Inventory struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates the stock record of productID.
func New(productID uuid.UUID, quantity int, location string) (*Inventory, error) {
	if productID == uuid.Nil {
		return nil, domain.Invalid("product id is required")
	}
	if quantity < 0 {
		return nil, domain.Invalid("quantity cannot be negative")
	}
	now := time.Now().UTC()
	return &Inventory{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Location:  strings.TrimSpace(location),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Adjust adds delta to the quantity. Negative deltas remove stock.
func (i *Inventory) Adjust(delta int) error {
	if i.Quantity+delta < 0 {
		return fmt.Errorf("%w: have %d, requested %d", ErrInsufficientStock, i.Quantity, -delta)
	}
	i.Quantity += delta
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// IsLow reports whether the quantity is strictly below threshold.
func (i *Inventory) IsLow(threshold int) bool {
	return i.Quantity < threshold
}
