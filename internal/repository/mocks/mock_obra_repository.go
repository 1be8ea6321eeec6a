package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockObraRepository struct {
	mock.Mock
}

func (m *MockObraRepository) FindByID(ctx context.Context, id string) (*model.Obra, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Obra), args.Error(1)
}

func (m *MockObraRepository) List(ctx context.Context) ([]model.Obra, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Obra), args.Error(1)
}

func (m *MockObraRepository) FindByCodigo(ctx context.Context, codigo string) (*model.Obra, error) {
	args := m.Called(ctx, codigo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Obra), args.Error(1)
}

func (m *MockObraRepository) Create(ctx context.Context, o *model.Obra) (*model.Obra, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Obra), args.Error(1)
}

func (m *MockObraRepository) Update(ctx context.Context, o *model.Obra) (*model.Obra, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Obra), args.Error(1)
}

func (m *MockObraRepository) Usage(ctx context.Context, id string) (repository.ObraUsage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.ObraUsage), args.Error(1)
}

func (m *MockObraRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
