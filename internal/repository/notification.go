package repository

import (
	"context"

	"docportal/internal/model"
)

// NotificationRepository stores recipient-addressed notifications.
type NotificationRepository interface {
	// Create inserts a notification. The caller supplies ID and CreatedAt.
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)

	// ListByRecipient returns all notifications for the recipient, newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error)

	// CountUnread returns the number of unread notifications for the recipient.
	CountUnread(ctx context.Context, recipientID string) (int, error)

	// MarkRead sets read=true. It is a no-op for an already read notification
	// and returns ErrNotFound if the notification does not exist.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead sets read=true on every notification of the recipient and
	// returns how many changed.
	MarkAllRead(ctx context.Context, recipientID string) (int, error)
}
