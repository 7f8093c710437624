package product

import (
	"context"

	"github.com/amirasaad/storefront/infra/repository"
	"github.com/amirasaad/storefront/pkg/domain/product"
	repo "github.com/amirasaad/storefront/pkg/repository/product"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New returns a gorm-backed product repository.
func New(db *gorm.DB) repo.Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, p *product.Product) error {
	err := r.db.WithContext(ctx).Create(fromDomain(p)).Error
	return repository.MapGormError(err, nil, product.ErrProductAlreadyExists)
}

func (r *repositoryImpl) Update(ctx context.Context, p *product.Product) error {
	tx := r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"category":    p.Category,
			"price_cents": p.PriceCents,
			"status":      string(p.Status),
			"updated_at":  p.UpdatedAt,
		})
	if tx.Error != nil {
		return repository.MapGormError(tx.Error, nil, product.ErrProductAlreadyExists)
	}
	return repository.RequireAffected(tx, product.ErrProductNotFound)
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repositoryImpl) GetByName(ctx context.Context, name string) (*product.Product, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *repositoryImpl) List(
	ctx context.Context,
	filter product.Filter,
	limit, offset int,
) ([]*product.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Scopes(matching(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Product
	if err := r.db.WithContext(ctx).Scopes(matching(filter)).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*product.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	return repository.RequireAffected(tx, product.ErrProductNotFound)
}

func (r *repositoryImpl) first(ctx context.Context, query string, arg any) (*product.Product, error) {
	var m Product
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, repository.MapGormError(err, product.ErrProductNotFound, nil)
	}
	return m.toDomain(), nil
}

func matching(filter product.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			q = q.Where("name = ?", filter.Name)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.CreatedBy != nil {
			q = q.Where("created_by = ?", *filter.CreatedBy)
		}
		return q
	}
}
