package user

import (
	"context"

	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/google/uuid"
)

// Repository defines the interface for user data access operations.
// Lookups return user.ErrUserNotFound when no record matches.
type Repository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, u *user.User) error

	// Update persists the mutable fields of an existing user.
	Update(ctx context.Context, u *user.User) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*user.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
