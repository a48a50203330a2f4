package postgres

import (
	"context"
	"testing"
	"time"

	"docportal/internal/model"
	"docportal/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notificationCols = []string{"id", "recipient_id", "type", "message", "document_id", "document_title", "read", "created_at"}

func TestNotificationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)
	now := time.Now().UTC()

	n := &model.Notification{
		ID:            "n-1",
		RecipientID:   "stu-1",
		Type:          model.NotificationApproval,
		Message:       "approved",
		DocumentID:    "doc-1",
		DocumentTitle: "Graph Notes",
		CreatedAt:     now,
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs("n-1", "stu-1", "approval", "approved", "doc-1", "Graph Notes", false, now).
		WillReturnRows(sqlmock.NewRows(notificationCols).
			AddRow("n-1", "stu-1", "approval", "approved", "doc-1", "Graph Notes", false, now))

	out, err := repo.Create(context.Background(), n)

	require.NoError(t, err)
	assert.Equal(t, model.NotificationApproval, out.Type)
	assert.Equal(t, "doc-1", out.DocumentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_ListAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM notifications WHERE recipient_id = \$1 ORDER BY created_at DESC, seq DESC`).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows(notificationCols).
			AddRow("n-2", "stu-1", "rejection", "rejected: too short", "doc-2", "Essay", false, now).
			AddRow("n-1", "stu-1", "approval", "approved", nil, nil, true, now.Add(-time.Hour)))

	items, err := repo.ListByRecipient(ctx, "stu-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n-2", items[0].ID)
	assert.Empty(t, items[1].DocumentID)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications WHERE recipient_id = \$1 AND NOT read`).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountUnread(ctx, "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_MarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE notifications SET read = TRUE WHERE id = \$1`).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkRead(ctx, "n-1"))

	mock.ExpectExec(`UPDATE notifications SET read = TRUE WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.MarkRead(ctx, "missing"), repository.ErrNotFound)

	mock.ExpectExec(`UPDATE notifications SET read = TRUE WHERE recipient_id = \$1 AND NOT read`).
		WithArgs("stu-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	changed, err := repo.MarkAllRead(ctx, "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 3, changed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
