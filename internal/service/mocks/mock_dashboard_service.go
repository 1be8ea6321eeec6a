package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context, actor *model.User) (*service.DashboardStats, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) Timeline(ctx context.Context, actor *model.User, dias int, obraID string) ([]service.TimelinePoint, error) {
	args := m.Called(ctx, actor, dias, obraID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TimelinePoint), args.Error(1)
}

func (m *MockDashboardService) RecentActivity(ctx context.Context, actor *model.User, limit int) ([]service.ActivityItem, error) {
	args := m.Called(ctx, actor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ActivityItem), args.Error(1)
}

func (m *MockDashboardService) TopTipos(ctx context.Context, actor *model.User) ([]service.TipoTotal, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TipoTotal), args.Error(1)
}
