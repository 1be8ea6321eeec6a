package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockRegistroRepository struct {
	mock.Mock
}

func (m *MockRegistroRepository) Create(ctx context.Context, r *model.Registro) (*model.Registro, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registro), args.Error(1)
}

func (m *MockRegistroRepository) FindByID(ctx context.Context, id string) (*model.Registro, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registro), args.Error(1)
}

func (m *MockRegistroRepository) List(ctx context.Context, f repository.RegistroFilter, pq repository.PageQuery) (*repository.PageResult[model.Registro], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Registro]), args.Error(1)
}

func (m *MockRegistroRepository) Update(ctx context.Context, r *model.Registro) (*model.Registro, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registro), args.Error(1)
}

func (m *MockRegistroRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
