package product

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product cannot be found.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductAlreadyExists is returned when a product name is taken.
	ErrProductAlreadyExists = errors.New("product already exists")
)

// Status is the catalog visibility of a product.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Product is a catalog entry.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"price_cents"`
	Status      Status    `json:"status"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a draft product.
func New(name, description, category string, priceCents int64, createdBy uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("product name cannot be empty")
	}
	if priceCents < 0 {
		return nil, domain.Invalid("price cannot be negative")
	}
	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		PriceCents:  priceCents,
		Status:      StatusDraft,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Publish makes the product visible in the catalog.
func (p *Product) Publish() {
	p.Status = StatusPublished
	p.UpdatedAt = time.Now().UTC()
}

// Patch holds the optional fields of an update.
type Patch struct {
	Name        *string
	Description *string
	Category    *string
	PriceCents  *int64
}

// Apply copies the set fields of patch onto p.
func (p *Product) Apply(patch Patch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Invalid("product name cannot be empty")
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.PriceCents != nil {
		if *patch.PriceCents < 0 {
			return domain.Invalid("price cannot be negative")
		}
		p.PriceCents = *patch.PriceCents
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Filter narrows product listings. Empty fields match everything.
type Filter struct {
	Name      string
	Category  string
	Status    Status
	CreatedBy *uuid.UUID
}
