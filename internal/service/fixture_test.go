package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"docportal/internal/model"
	"docportal/internal/repository/memory"
	"docportal/internal/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	student1 = model.Identity{ID: "stu-1", Name: "Asha Verma", Email: "asha@example.edu", RollNumber: "CS-001", Role: model.RoleStudent}
	student2 = model.Identity{ID: "stu-2", Name: "Ravi Kumar", Email: "ravi@example.edu", RollNumber: "CS-002", Role: model.RoleStudent}
	prof1    = model.Identity{ID: "prof-1", Name: "Dr. Rao", Email: "rao@example.edu", Role: model.RoleProfessor}
)

type fixture struct {
	docs      *memory.DocumentMemory
	notes     *memory.NotificationMemory
	notifier  NotificationService
	review    ReviewService
	documents DocumentService
	analytics AnalyticsService
	logs      *observer.ObservedLogs
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("id-%d", n.Add(1)) }
}

func newFixture(t *testing.T, store storage.Storage) *fixture {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)
	opts := []Option{WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs())}

	f := &fixture{
		docs:  memory.NewDocumentMemory(),
		notes: memory.NewNotificationMemory(),
		logs:  logs,
	}
	f.notifier = NewNotificationService(f.notes, nil, log, opts...)
	f.review = NewReviewService(f.docs, memory.NewReviewMemory(f.docs, f.notes), nil, log, opts...)
	f.documents = NewDocumentService(DocumentDeps{
		Repo:          f.docs,
		Store:         store,
		Review:        f.review,
		Notifier:      f.notifier,
		Rules:         UploadRules{MaxBytes: 10 << 20, AllowedTypes: []string{"application/pdf", "application/msword"}},
		PresignExpiry: 15 * time.Minute,
		Log:           log,
	}, opts...)
	f.analytics = NewAnalyticsService(f.docs, 0, opts...)
	return f
}

func submitInput(subject string, uploader model.Identity) SubmitInput {
	return SubmitInput{
		Title:        "Sorting in practice",
		Description:  "Comparison of merge and quick sort",
		Subject:      subject,
		DocumentType: model.DocumentTypeAssignment,
		Year:         "2",
		Branch:       "CSE",
		FileName:     "sorting.pdf",
		FileType:     "application/pdf",
		FileSize:     2048,
		FileLocation: "documents/" + uploader.ID + "/sorting.pdf",
		Uploader:     uploader,
	}
}

func (f *fixture) submit(t *testing.T, subject string, uploader model.Identity) *model.Document {
	t.Helper()
	doc, err := f.documents.Submit(context.Background(), submitInput(subject, uploader))
	require.NoError(t, err)
	return doc
}

func (f *fixture) inbox(t *testing.T, recipientID string) []model.Notification {
	t.Helper()
	list, err := f.notes.ListByRecipient(context.Background(), recipientID)
	require.NoError(t, err)
	return list
}

func (f *fixture) stored(t *testing.T, id string) *model.Document {
	t.Helper()
	doc, err := f.docs.FindByID(context.Background(), id)
	require.NoError(t, err)
	return doc
}
