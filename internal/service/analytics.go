package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// DefaultRecentWindow is the trailing period counted as recent uploads.
const DefaultRecentWindow = 30 * 24 * time.Hour

// AnalyticsService computes read-only summaries of the document store.
type AnalyticsService interface {
	// Summarize aggregates one snapshot of every document.
	Summarize(ctx context.Context) (*model.Analytics, error)
}

type analyticsService struct {
	repo   repository.DocumentRepository
	window time.Duration
	settings
}

// NewAnalyticsService constructs an AnalyticsService. A non-positive window falls back to DefaultRecentWindow.
func NewAnalyticsService(repo repository.DocumentRepository, window time.Duration, opts ...Option) AnalyticsService {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	return &analyticsService{repo: repo, window: window, settings: applyOptions(opts)}
}

func (s *analyticsService) Summarize(ctx context.Context) (*model.Analytics, error) {
	docs, err := s.repo.List(ctx, repository.DocumentFilter{})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return aggregate(docs, s.now(), s.window), nil
}

// aggregate derives every count from the same slice so the totals agree.
func aggregate(docs []model.Document, now time.Time, window time.Duration) *model.Analytics {
	out := &model.Analytics{
		TotalUploads: len(docs),
		SubjectWise:  []model.SubjectCount{},
		StudentWise:  []model.StudentCount{},
		StatusWise:   make([]model.StatusCount, 0, len(model.Statuses)),
	}

	bySubject := map[string]int{}
	byStatus := map[model.Status]int{}
	byStudent := map[string]*model.StudentCount{}
	// docs arrive newest first, so the first name seen per uploader is the latest one.
	cutoff := now.Add(-window)

	for i := range docs {
		d := &docs[i]
		bySubject[d.Subject]++
		byStatus[d.Status]++

		sc, ok := byStudent[d.UploadedBy.ID]
		if !ok {
			sc = &model.StudentCount{StudentID: d.UploadedBy.ID, StudentName: d.UploadedBy.Name}
			byStudent[d.UploadedBy.ID] = sc
		}
		sc.Count++

		if !d.CreatedAt.Before(cutoff) && !d.CreatedAt.After(now) {
			out.RecentUploads++
		}
	}

	for subject, n := range bySubject {
		out.SubjectWise = append(out.SubjectWise, model.SubjectCount{Subject: subject, Count: n})
	}
	sort.Slice(out.SubjectWise, func(i, j int) bool {
		a, b := out.SubjectWise[i], out.SubjectWise[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Subject < b.Subject
	})

	for _, sc := range byStudent {
		out.StudentWise = append(out.StudentWise, *sc)
	}
	sort.Slice(out.StudentWise, func(i, j int) bool {
		a, b := out.StudentWise[i], out.StudentWise[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.StudentID < b.StudentID
	})

	for _, st := range model.Statuses {
		out.StatusWise = append(out.StatusWise, model.StatusCount{Status: st, Count: byStatus[st]})
	}
	return out
}
