// Package notification turns user lifecycle events into stored notifications.
package notification

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/notification"
	"github.com/amirasaad/storefront/pkg/eventbus"
	"github.com/amirasaad/storefront/pkg/handler/common"
	"github.com/amirasaad/storefront/pkg/retry"
)

const (
	WelcomeMessage = "Welcome! Your registration was successful."
	LoginMessage   = "You have successfully logged in."

	TypeRegistration = "user.registration"
	TypeLogin        = "user.login"
)

// ErrNoRecord is a failed attempt where the sender reported success without
// returning the stored notification.
var ErrNoRecord = errors.New("notification sender returned no record")

// Sender persists a notification for a user.
type Sender interface {
	SendUserNotification(ctx context.Context, userID, message, notificationType string) (*notification.Notification, error)
}

// HandleUserRegistered sends the welcome notification.
func HandleUserRegistered(svc Sender, exec *retry.Executor, logger *slog.Logger) eventbus.HandlerFunc {
	return handle(svc, exec, logger.With("handler", "UserRegistered"), WelcomeMessage, TypeRegistration)
}

// HandleUserLoggedIn sends the login notification.
func HandleUserLoggedIn(svc Sender, exec *retry.Executor, logger *slog.Logger) eventbus.HandlerFunc {
	return handle(svc, exec, logger.With("handler", "UserLoggedIn"), LoginMessage, TypeLogin)
}

func handle(
	svc Sender,
	exec *retry.Executor,
	logger *slog.Logger,
	message, notificationType string,
) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) (any, error) {
		log := logger.With("event_type", e.Type)
		userID, err := e.EntityID()
		if err != nil {
			log.Error("❌ [ERROR] Unexpected payload", "error", err)
			return retry.Result[*notification.Notification]{Err: err}, nil
		}
		log = log.With("user_id", userID)
		log.Debug("🟢 [START] Sending notification")

		res := retry.Do(ctx, exec, "send "+notificationType,
			func(ctx context.Context) (*notification.Notification, error) {
				n, err := svc.SendUserNotification(ctx, userID, message, notificationType)
				if err == nil && n == nil {
					return nil, ErrNoRecord
				}
				return n, err
			})
		if !res.OK() {
			log.Error("❌ [ERROR] Notification not sent", "attempts", res.Attempts, "error", res.Err)
			return res, nil
		}
		log.Info("✅ [SUCCESS] Notification sent", "notification_id", res.Value.ID, "attempts", res.Attempts)
		return res, nil
	}
}

// Register attaches the notification listeners to bus. Welcome messages are
// deduplicated per user through tracker; login messages are sent every time.
func Register(
	bus eventbus.Registrar,
	svc Sender,
	exec *retry.Executor,
	tracker common.Tracker,
	logger *slog.Logger,
) {
	welcome := HandleUserRegistered(svc, exec, logger)
	if tracker != nil {
		welcome = common.WithIdempotency(welcome, tracker, common.EntityKey("welcome"), "UserRegistered", logger)
	}
	bus.Register(events.EventTypeUserRegistered, welcome)
	bus.Register(events.EventTypeUserLoggedIn, HandleUserLoggedIn(svc, exec, logger))
}
