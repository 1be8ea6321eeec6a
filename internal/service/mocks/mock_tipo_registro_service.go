package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockTipoRegistroService struct {
	mock.Mock
}

func (m *MockTipoRegistroService) List(ctx context.Context) ([]model.TipoRegistro, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroService) ListAll(ctx context.Context, actor *model.User) ([]model.TipoRegistro, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroService) Get(ctx context.Context, id string) (*model.TipoRegistro, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroService) Create(ctx context.Context, actor *model.User, nome, descricao string) (*model.TipoRegistro, error) {
	args := m.Called(ctx, actor, nome, descricao)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroService) Update(ctx context.Context, actor *model.User, id string, p service.TipoRegistroPatch) (*model.TipoRegistro, error) {
	args := m.Called(ctx, actor, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TipoRegistro), args.Error(1)
}

func (m *MockTipoRegistroService) Delete(ctx context.Context, actor *model.User, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
