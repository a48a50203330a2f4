package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docportal/internal/events"
	"docportal/internal/model"
	"docportal/internal/repository"
)

// NotificationService records recipient-addressed events and tracks their read state.
type NotificationService interface {
	// Notify stores a new unread notification for the recipient.
	Notify(ctx context.Context, recipientID string, typ model.NotificationType, message string, ref *model.DocumentRef) (*model.Notification, error)

	// List returns every notification of the recipient, newest first.
	List(ctx context.Context, recipientID string) ([]model.Notification, error)

	// UnreadCount returns how many of the recipient's notifications are unread.
	UnreadCount(ctx context.Context, recipientID string) (int, error)

	// MarkRead marks one notification read. Already read notifications are left as they are.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks every notification of the recipient read.
	MarkAllRead(ctx context.Context, recipientID string) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher events.Publisher
	log       *zap.Logger
	settings
}

// NewNotificationService constructs a NotificationService. A nil publisher disables outbound events.
func NewNotificationService(repo repository.NotificationRepository, publisher events.Publisher, log *zap.Logger, opts ...Option) NotificationService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		log:       log.Named("notifications"),
		settings:  applyOptions(opts),
	}
}

func (s *notificationService) Notify(ctx context.Context, recipientID string, typ model.NotificationType, message string, ref *model.DocumentRef) (*model.Notification, error) {
	n, err := newNotification(s.settings, recipientID, typ, message, ref)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}
	publishNotification(ctx, s.publisher, s.log, *stored)
	return stored, nil
}

// newNotification validates and builds an unread notification.
func newNotification(st settings, recipientID string, typ model.NotificationType, message string, ref *model.DocumentRef) (*model.Notification, error) {
	if strings.TrimSpace(recipientID) == "" {
		return nil, fieldError("recipientId", "is required")
	}
	if !typ.Valid() {
		return nil, fieldError("type", "is invalid")
	}
	if strings.TrimSpace(message) == "" {
		return nil, fieldError("message", "is required")
	}

	n := &model.Notification{
		ID:          st.newID(),
		RecipientID: recipientID,
		Type:        typ,
		Message:     message,
		CreatedAt:   st.now(),
	}
	if ref != nil {
		n.DocumentID = ref.ID
		n.DocumentTitle = ref.Title
	}
	return n, nil
}

// publishNotification announces a stored notification. Failures never undo the stored record.
func publishNotification(ctx context.Context, pub events.Publisher, log *zap.Logger, n model.Notification) {
	if err := pub.PublishNotification(ctx, n); err != nil {
		log.Error("publish notification failed",
			zap.String("notification_id", n.ID),
			zap.String("recipient_id", n.RecipientID),
			zap.Error(err),
		)
	}
}

func (s *notificationService) List(ctx context.Context, recipientID string) ([]model.Notification, error) {
	if strings.TrimSpace(recipientID) == "" {
		return nil, fieldError("recipientId", "is required")
	}
	return s.repo.ListByRecipient(ctx, recipientID)
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	if strings.TrimSpace(recipientID) == "" {
		return 0, fieldError("recipientId", "is required")
	}
	return s.repo.CountUnread(ctx, recipientID)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fieldError("id", "is required")
	}
	return fromRepository(s.repo.MarkRead(ctx, id), "notification")
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	if strings.TrimSpace(recipientID) == "" {
		return fieldError("recipientId", "is required")
	}
	changed, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return err
	}
	s.log.Debug("notifications marked read", zap.String("recipient_id", recipientID), zap.Int("changed", changed))
	return nil
}
