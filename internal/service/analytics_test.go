package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"docportal/internal/model"
	"docportal/internal/repository"
	repoMocks "docportal/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_SubjectCounts(t *testing.T) {
	f := newFixture(t, nil)
	f.submit(t, "A", student1)
	f.submit(t, "A", student2)
	f.submit(t, "B", student1)

	got, err := f.analytics.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalUploads)
	assert.Equal(t, []model.SubjectCount{{Subject: "A", Count: 2}, {Subject: "B", Count: 1}}, got.SubjectWise)
	assert.Equal(t, 3, got.RecentUploads)
	assertCountsAgree(t, got)
}

func TestAnalyticsService_StatusAndStudentCounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	a := f.submit(t, "Algorithms", student1)
	b := f.submit(t, "Algorithms", student1)
	f.submit(t, "algorithms", student2)

	_, err := f.review.Approve(ctx, a.ID, prof1, "")
	require.NoError(t, err)
	_, err = f.review.Reject(ctx, b.ID, prof1, "redo")
	require.NoError(t, err)

	got, err := f.analytics.Summarize(ctx)
	require.NoError(t, err)

	assert.Equal(t, []model.StatusCount{
		{Status: model.StatusSubmitted, Count: 1},
		{Status: model.StatusApproved, Count: 1},
		{Status: model.StatusRejected, Count: 1},
	}, got.StatusWise)
	assert.Equal(t, []model.StudentCount{
		{StudentID: student1.ID, StudentName: student1.Name, Count: 2},
		{StudentID: student2.ID, StudentName: student2.Name, Count: 1},
	}, got.StudentWise)
	// Subjects group by exact key.
	assert.Len(t, got.SubjectWise, 2)
	assertCountsAgree(t, got)
}

func TestAnalyticsService_Empty(t *testing.T) {
	f := newFixture(t, nil)

	got, err := f.analytics.Summarize(context.Background())
	require.NoError(t, err)

	assert.Zero(t, got.TotalUploads)
	assert.NotNil(t, got.SubjectWise)
	assert.Empty(t, got.SubjectWise)
	assert.NotNil(t, got.StudentWise)
	require.Len(t, got.StatusWise, 3)
	for _, sc := range got.StatusWise {
		assert.Zero(t, sc.Count)
	}
}

func TestAnalyticsService_ListError(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	mRepo.On("List", ctx, repository.DocumentFilter{}).Return(nil, errors.New("db down"))

	_, err := NewAnalyticsService(mRepo, 0).Summarize(ctx)
	assert.EqualError(t, err, "list documents: db down")
	mRepo.AssertExpectations(t)
}

func TestAggregate_RecentWindow(t *testing.T) {
	day := 24 * time.Hour
	at := func(d time.Duration, uploader string) model.Document {
		return model.Document{
			Subject:    "S",
			Status:     model.StatusSubmitted,
			UploadedBy: model.Identity{ID: uploader, Name: uploader},
			CreatedAt:  fixedNow.Add(d),
		}
	}
	docs := []model.Document{
		at(time.Hour, "future"),
		at(0, "now"),
		at(-29*day, "inside"),
		at(-30*day, "edge"),
		at(-31*day, "outside"),
	}

	got := aggregate(docs, fixedNow, DefaultRecentWindow)
	assert.Equal(t, 3, got.RecentUploads)
	assert.Equal(t, 5, got.TotalUploads)

	got = aggregate(docs, fixedNow, 7*day)
	assert.Equal(t, 1, got.RecentUploads)
}

func TestAggregate_StudentNameFromNewestDocument(t *testing.T) {
	docs := []model.Document{
		{Subject: "S", Status: model.StatusSubmitted, UploadedBy: model.Identity{ID: "stu-1", Name: "Asha V."}},
		{Subject: "S", Status: model.StatusSubmitted, UploadedBy: model.Identity{ID: "stu-1", Name: "Asha"}},
	}

	got := aggregate(docs, fixedNow, DefaultRecentWindow)
	require.Len(t, got.StudentWise, 1)
	assert.Equal(t, "Asha V.", got.StudentWise[0].StudentName)
	assert.Equal(t, 2, got.StudentWise[0].Count)
}

func assertCountsAgree(t *testing.T, a *model.Analytics) {
	t.Helper()
	status, subject, student := 0, 0, 0
	for _, c := range a.StatusWise {
		status += c.Count
	}
	for _, c := range a.SubjectWise {
		subject += c.Count
	}
	for _, c := range a.StudentWise {
		student += c.Count
	}
	assert.Equal(t, a.TotalUploads, status)
	assert.Equal(t, a.TotalUploads, subject)
	assert.Equal(t, a.TotalUploads, student)
}
