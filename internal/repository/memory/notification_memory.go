package memory

import (
	"context"
	"sync"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// NotificationMemory is an in-process implementation of repository.NotificationRepository.
// Each recipient's notifications are kept newest first.
type NotificationMemory struct {
	mu          sync.RWMutex
	byRecipient map[string][]*model.Notification
	byID        map[string]*model.Notification
}

// NewNotificationMemory creates an empty store.
func NewNotificationMemory() *NotificationMemory {
	return &NotificationMemory{
		byRecipient: make(map[string][]*model.Notification),
		byID:        make(map[string]*model.Notification),
	}
}

var _ repository.NotificationRepository = (*NotificationMemory)(nil)

func (r *NotificationMemory) Create(_ context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[n.ID]; ok {
		return nil, repository.ErrConditionFailed
	}
	return r.insertLocked(n), nil
}

// insertLocked stores n, which must have a fresh ID. r.mu must be held.
func (r *NotificationMemory) insertLocked(n *model.Notification) *model.Notification {
	stored := *n
	r.byID[stored.ID] = &stored
	// prepend
	list := r.byRecipient[stored.RecipientID]
	r.byRecipient[stored.RecipientID] = append([]*model.Notification{&stored}, list...)

	out := stored
	return &out
}

func (r *NotificationMemory) ListByRecipient(_ context.Context, recipientID string) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byRecipient[recipientID]
	items := make([]model.Notification, 0, len(list))
	for _, n := range list {
		items = append(items, *n)
	}
	return items, nil
}

func (r *NotificationMemory) CountUnread(_ context.Context, recipientID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.byRecipient[recipientID] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *NotificationMemory) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.Read = true
	return nil
}

func (r *NotificationMemory) MarkAllRead(_ context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for _, n := range r.byRecipient[recipientID] {
		if !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed, nil
}
