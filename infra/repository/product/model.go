package product

import (
	"time"

	"github.com/amirasaad/storefront/pkg/domain/product"
	"github.com/google/uuid"
)

// Product represents a catalog row.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null;size:255"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"index;size:100"`
	PriceCents  int64     `gorm:"not null"`
	Status      string    `gorm:"index;size:16;not null"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) *Product {
	return &Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Status:      string(p.Status),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *Product) toDomain() *product.Product {
	return &product.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		PriceCents:  m.PriceCents,
		Status:      product.Status(m.Status),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
