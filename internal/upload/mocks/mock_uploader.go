package mocks

import (
	"context"

	"gedo/internal/model"
	"gedo/internal/upload"

	"github.com/stretchr/testify/mock"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Save(ctx context.Context, f upload.File) (*model.Attachment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}
