package postgres

import (
	"context"
	"database/sql"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

const notificationColumns = `id, recipient_id, type, message, document_id, document_title, read, created_at`

func scanNotification(row rowScanner) (*model.Notification, error) {
	var (
		n          model.Notification
		documentID sql.NullString
		title      sql.NullString
	)
	if err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.Type,
		&n.Message,
		&documentID,
		&title,
		&n.Read,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	n.DocumentID = documentID.String
	n.DocumentTitle = title.String
	return &n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	return insertNotification(ctx, r.db, n)
}

func insertNotification(ctx context.Context, db querier, n *model.Notification) (*model.Notification, error) {
	const q = `
		INSERT INTO notifications (id, recipient_id, type, message, document_id, document_title, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + notificationColumns
	row := db.QueryRowContext(ctx, q,
		n.ID,
		n.RecipientID,
		n.Type,
		n.Message,
		nullString(n.DocumentID),
		nullString(n.DocumentTitle),
		n.Read,
		n.CreatedAt,
	)
	return scanNotification(row)
}

// ListByRecipient breaks created_at ties by insertion order.
func (r *NotificationPostgres) ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error) {
	const q = `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC, seq DESC`
	rows, err := r.db.QueryContext(ctx, q, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationPostgres) CountUnread(ctx context.Context, recipientID string) (int, error) {
	const q = `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT read`
	var count int
	if err := r.db.QueryRowContext(ctx, q, recipientID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationPostgres) MarkRead(ctx context.Context, id string) error {
	// Matching already-read rows keeps the call idempotent and lets RowsAffected signal absence.
	const q = `UPDATE notifications SET read = TRUE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationPostgres) MarkAllRead(ctx context.Context, recipientID string) (int, error) {
	const q = `UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND NOT read`
	res, err := r.db.ExecContext(ctx, q, recipientID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
