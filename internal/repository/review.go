package repository

import (
	"context"

	"docportal/internal/model"
)

// ReviewRepository records a review decision together with the notification it produces.
type ReviewRepository interface {
	// Decide applies patch to the document if cond holds and inserts n, both or neither.
	// Missing rows and failed conditions are reported as in DocumentRepository.Update.
	Decide(ctx context.Context, id string, cond Condition, patch DocumentPatch, n *model.Notification) (*model.Document, *model.Notification, error)
}
