package notification

import (
	"context"

	"github.com/amirasaad/storefront/pkg/domain/notification"
)

// Repository persists user notifications.
type Repository interface {
	// Create stores n and fills in its ID.
	Create(ctx context.Context, n *notification.Notification) error
	Get(ctx context.Context, id string) (*notification.Notification, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*notification.Notification, error)
	MarkAsRead(ctx context.Context, id string) (*notification.Notification, error)
}
