package user

import (
	"context"

	"github.com/amirasaad/storefront/infra/repository"
	"github.com/amirasaad/storefront/pkg/domain/user"
	repo "github.com/amirasaad/storefront/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New returns a gorm-backed user repository.
func New(db *gorm.DB) repo.Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, u *user.User) error {
	err := r.db.WithContext(ctx).Create(fromDomain(u)).Error
	return repository.MapGormError(err, nil, user.ErrUserAlreadyExists)
}

func (r *repositoryImpl) Update(ctx context.Context, u *user.User) error {
	tx := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"names":      u.Names,
			"role":       string(u.Role),
			"updated_at": u.UpdatedAt,
		})
	return repository.RequireAffected(tx, user.ErrUserNotFound)
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repositoryImpl) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, repository.MapGormError(err, user.ErrUserNotFound, nil)
	}
	return m.toDomain(), nil
}
