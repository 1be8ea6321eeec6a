package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, actor *model.User, id string) (*model.User, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, actor *model.User, in service.CreateUserInput) (*model.User, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, actor *model.User, id string, in service.UpdateUserInput) (*model.User, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actor *model.User, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockUserService) ChangePassword(ctx context.Context, actor *model.User, current, next string) (*service.PasswordStatus, error) {
	args := m.Called(ctx, actor, current, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PasswordStatus), args.Error(1)
}

func (m *MockUserService) AdminChangePassword(ctx context.Context, actor *model.User, targetID, next string) (*model.User, error) {
	args := m.Called(ctx, actor, targetID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) PasswordStatus(ctx context.Context, actor *model.User) (*service.PasswordStatus, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PasswordStatus), args.Error(1)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	args := m.Called(ctx, username, email, password)
	return args.Bool(0), args.Error(1)
}
