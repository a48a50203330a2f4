package mocks

import (
	"context"

	"docportal/internal/model"
	"docportal/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Decide(ctx context.Context, id string, cond repository.Condition, patch repository.DocumentPatch, n *model.Notification) (*model.Document, *model.Notification, error) {
	args := m.Called(ctx, id, cond, patch, n)
	var (
		doc  *model.Document
		note *model.Notification
	)
	if v := args.Get(0); v != nil {
		doc = v.(*model.Document)
	}
	if v := args.Get(1); v != nil {
		note = v.(*model.Notification)
	}
	return doc, note, args.Error(2)
}
