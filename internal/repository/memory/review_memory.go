package memory

import (
	"context"
	"fmt"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// ReviewMemory applies a review decision and its notification under both store locks,
// so readers see either neither write or both.
type ReviewMemory struct {
	docs  *DocumentMemory
	notes *NotificationMemory
}

// NewReviewMemory joins the two stores holding documents and notifications.
func NewReviewMemory(docs *DocumentMemory, notes *NotificationMemory) *ReviewMemory {
	return &ReviewMemory{docs: docs, notes: notes}
}

var _ repository.ReviewRepository = (*ReviewMemory)(nil)

func (r *ReviewMemory) Decide(_ context.Context, id string, cond repository.Condition, patch repository.DocumentPatch, n *model.Notification) (*model.Document, *model.Notification, error) {
	// Lock order is documents then notifications.
	r.docs.mu.Lock()
	defer r.docs.mu.Unlock()
	r.notes.mu.Lock()
	defer r.notes.mu.Unlock()

	e, err := r.docs.checkLocked(id, cond)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := r.notes.byID[n.ID]; ok {
		return nil, nil, fmt.Errorf("insert notification: id %s already exists", n.ID)
	}
	return r.docs.applyLocked(e, patch), r.notes.insertLocked(n), nil
}
