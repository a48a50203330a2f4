package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"docportal/internal/model"
	"docportal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMemory_Lifecycle(t *testing.T) {
	repo := NewNotificationMemory()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"n1", "n2", "n3"} {
		_, err := repo.Create(ctx, &model.Notification{ID: id, RecipientID: "stu", Type: model.NotificationApproval, CreatedAt: now})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &model.Notification{ID: "other", RecipientID: "someone-else", CreatedAt: now})
	require.NoError(t, err)

	list, err := repo.ListByRecipient(ctx, "stu")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "n3", list[0].ID, "newest first")

	count, err := repo.CountUnread(ctx, "stu")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.MarkRead(ctx, "n2"))
	require.NoError(t, repo.MarkRead(ctx, "n2"), "marking twice is a no-op")
	assert.ErrorIs(t, repo.MarkRead(ctx, "missing"), repository.ErrNotFound)

	count, _ = repo.CountUnread(ctx, "stu")
	assert.Equal(t, 2, count)

	changed, err := repo.MarkAllRead(ctx, "stu")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	count, _ = repo.CountUnread(ctx, "stu")
	assert.Equal(t, 0, count)

	otherCount, _ := repo.CountUnread(ctx, "someone-else")
	assert.Equal(t, 1, otherCount)
}

func TestNotificationMemory_ConcurrentMarkRead(t *testing.T) {
	repo := NewNotificationMemory()
	ctx := context.Background()
	_, err := repo.Create(ctx, &model.Notification{ID: "n1", RecipientID: "stu"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.MarkRead(ctx, "n1"))
		}()
	}
	wg.Wait()

	list, _ := repo.ListByRecipient(ctx, "stu")
	assert.True(t, list[0].Read)
}
