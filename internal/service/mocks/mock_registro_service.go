package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRegistroService struct {
	mock.Mock
}

func (m *MockRegistroService) Create(ctx context.Context, actor *model.User, in service.CreateRegistroInput) (*model.Registro, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registro), args.Error(1)
}

func (m *MockRegistroService) Get(ctx context.Context, actor *model.User, id string) (*model.Registro, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registro), args.Error(1)
}

func (m *MockRegistroService) List(ctx context.Context, actor *model.User, q service.RegistroListQuery) (*service.RegistroListResult, error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RegistroListResult), args.Error(1)
}

func (m *MockRegistroService) Update(ctx context.Context, actor *model.User, id string, in service.UpdateRegistroInput) (*model.Registro, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registro), args.Error(1)
}

func (m *MockRegistroService) Delete(ctx context.Context, actor *model.User, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockRegistroService) OpenAttachment(ctx context.Context, actor *model.User, id string) (*service.Download, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Download), args.Error(1)
}
