package mocks

import (
	"context"

	"gedo/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTipoRegistroRepository struct {
	mock.Mock
}

func (m *MockTipoRegistroRepository) FindByID(ctx context.Context, id string) (*model.TipoRegistro, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroRepository) FindByNome(ctx context.Context, nome string) (*model.TipoRegistro, error) {
	args := m.Called(ctx, nome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroRepository) List(ctx context.Context, includeInactive bool) ([]model.TipoRegistro, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroRepository) Create(ctx context.Context, t *model.TipoRegistro) (*model.TipoRegistro, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroRepository) Update(ctx context.Context, previousNome string, t *model.TipoRegistro) (*model.TipoRegistro, error) {
	args := m.Called(ctx, previousNome, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroRepository) CountRegistros(ctx context.Context, nome string) (int, error) {
	args := m.Called(ctx, nome)
	return args.Int(0), args.Error(1)
}

func (m *MockTipoRegistroRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
