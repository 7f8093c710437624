package notification

import (
	"errors"
	"time"
)

// ErrNotificationNotFound is returned when a notification cannot be found.
var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a message addressed to one user.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Message   string    `json:"message" bson:"message"`
	Type      string    `json:"type" bson:"type"`
	IsRead    bool      `json:"is_read" bson:"is_read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// New creates an unread notification.
func New(userID, message, notificationType string) *Notification {
	return &Notification{
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now().UTC(),
	}
}
