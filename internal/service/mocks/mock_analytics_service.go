package mocks

import (
	"context"

	"docportal/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Summarize(ctx context.Context) (*model.Analytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analytics), args.Error(1)
}
