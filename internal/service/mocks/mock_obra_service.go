package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockObraService struct {
	mock.Mock
}

func (m *MockObraService) List(ctx context.Context, actor *model.User) ([]model.Obra, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Obra), args.Error(1)
}

func (m *MockObraService) Get(ctx context.Context, actor *model.User, id string) (*model.Obra, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Obra), args.Error(1)
}

func (m *MockObraService) Create(ctx context.Context, actor *model.User, in service.ObraInput) (*model.Obra, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Obra), args.Error(1)
}

func (m *MockObraService) Update(ctx context.Context, actor *model.User, id string, p service.ObraPatch) (*model.Obra, error) {
	args := m.Called(ctx, actor, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Obra), args.Error(1)
}

func (m *MockObraService) Delete(ctx context.Context, actor *model.User, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
