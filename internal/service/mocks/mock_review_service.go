package mocks

import (
	"context"

	"docportal/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Approve(ctx context.Context, documentID string, reviewer model.Identity, comment string) (*model.Document, error) {
	args := m.Called(ctx, documentID, reviewer, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockReviewService) Reject(ctx context.Context, documentID string, reviewer model.Identity, comment string) (*model.Document, error) {
	args := m.Called(ctx, documentID, reviewer, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockReviewService) Withdraw(ctx context.Context, documentID string, owner model.Identity) (*model.Document, error) {
	args := m.Called(ctx, documentID, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}
