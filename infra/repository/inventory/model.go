package inventory

import (
	"time"

	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/google/uuid"
)

// Inventory is the stock row of a product.
type Inventory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Quantity  int       `gorm:"not null"`
	Location  string    `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Inventory) TableName() string {
	return "inventories"
}

func fromDomain(i *inventory.Inventory) *Inventory {
	return &Inventory{
		ID:        i.ID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Location:  i.Location,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (m *Inventory) toDomain() *inventory.Inventory {
	return &inventory.Inventory{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Location:  m.Location,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
