// Package notification stores and serves per-user notifications.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/storefront/pkg/domain/notification"
	repo "github.com/amirasaad/storefront/pkg/repository/notification"
	"github.com/amirasaad/storefront/pkg/utils"
)

// Service provides business logic for notifications.
type Service struct {
	repo   repo.Repository
	logger *slog.Logger
}

// New creates a new notification Service.
func New(r repo.Repository, logger *slog.Logger) *Service {
	return &Service{repo: r, logger: logger}
}

// SendUserNotification persists a new unread notification for userID.
func (s *Service) SendUserNotification(
	ctx context.Context,
	userID, message, notificationType string,
) (*notification.Notification, error) {
	log := s.logger.With("context", "SendUserNotification", "user_id", userID, "type", notificationType)
	n := notification.New(userID, message, notificationType)
	if err := s.repo.Create(ctx, n); err != nil {
		log.Error("Failed to send notification", "error", err)
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}
	log.Debug("Notification sent", "notification_id", n.ID)
	return n, nil
}

// Get returns a single notification.
func (s *Service) Get(ctx context.Context, id string) (*notification.Notification, error) {
	return s.repo.Get(ctx, id)
}

// ListForUser returns the newest notifications of userID first.
func (s *Service) ListForUser(
	ctx context.Context,
	userID string,
	page, limit int,
) ([]*notification.Notification, error) {
	limit, offset := utils.Offset(page, limit)
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// MarkAsRead flags a notification of userID as read.
func (s *Service) MarkAsRead(ctx context.Context, userID, id string) (*notification.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, notification.ErrNotificationNotFound
	}
	return s.repo.MarkAsRead(ctx, id)
}
