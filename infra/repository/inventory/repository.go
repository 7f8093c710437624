package inventory

import (
	"context"

	"github.com/amirasaad/storefront/infra/repository"
	"github.com/amirasaad/storefront/pkg/domain/inventory"
	repo "github.com/amirasaad/storefront/pkg/repository/inventory"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New returns a gorm-backed inventory repository.
func New(db *gorm.DB) repo.Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, inv *inventory.Inventory) error {
	err := r.db.WithContext(ctx).Create(fromDomain(inv)).Error
	return repository.MapGormError(err, nil, inventory.ErrInventoryAlreadyExists)
}

func (r *repositoryImpl) Update(ctx context.Context, inv *inventory.Inventory) error {
	tx := r.db.WithContext(ctx).Model(&Inventory{}).
		Where("id = ?", inv.ID).
		Updates(map[string]any{
			"quantity":   inv.Quantity,
			"location":   inv.Location,
			"updated_at": inv.UpdatedAt,
		})
	return repository.RequireAffected(tx, inventory.ErrInventoryNotFound)
}

func (r *repositoryImpl) GetByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Inventory, error) {
	var m Inventory
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&m).Error; err != nil {
		return nil, repository.MapGormError(err, inventory.ErrInventoryNotFound, nil)
	}
	return m.toDomain(), nil
}

func (r *repositoryImpl) List(ctx context.Context, limit, offset int) ([]*inventory.Inventory, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Inventory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []Inventory
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*inventory.Inventory, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *repositoryImpl) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&Inventory{}, "product_id = ?", productID)
	return repository.RequireAffected(tx, inventory.ErrInventoryNotFound)
}
