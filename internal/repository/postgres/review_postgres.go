package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// ReviewPostgres writes a review decision and its notification in one transaction.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

func (r *ReviewPostgres) Decide(ctx context.Context, id string, cond repository.Condition, patch repository.DocumentPatch, n *model.Notification) (*model.Document, *model.Notification, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin review: %w", err)
	}
	defer tx.Rollback()

	doc, err := updateDocument(ctx, tx, id, cond, patch)
	if err != nil {
		return nil, nil, err
	}
	note, err := insertNotification(ctx, tx, n)
	if err != nil {
		return nil, nil, fmt.Errorf("insert notification: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit review: %w", err)
	}
	return doc, note, nil
}
