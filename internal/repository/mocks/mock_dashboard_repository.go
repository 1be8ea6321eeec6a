package mocks

import (
	"context"
	"time"

	"gedo/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) Totals(ctx context.Context, scope repository.DashboardScope, since time.Time) (repository.RegistroTotals, error) {
	args := m.Called(ctx, scope, since)
	return args.Get(0).(repository.RegistroTotals), args.Error(1)
}

func (m *MockDashboardRepository) Timeline(ctx context.Context, scope repository.DashboardScope, since time.Time) ([]repository.DayCount, error) {
	args := m.Called(ctx, scope, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DayCount), args.Error(1)
}

func (m *MockDashboardRepository) RecentActivity(ctx context.Context, scope repository.DashboardScope, limit int) ([]repository.Activity, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Activity), args.Error(1)
}

func (m *MockDashboardRepository) TopTipos(ctx context.Context, scope repository.DashboardScope, limit int) ([]repository.TipoCount, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TipoCount), args.Error(1)
}
