package mocks

import (
	"context"
	"io"

	"gedo/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, filename string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, filename, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, filename, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Open(ctx context.Context, location string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, location)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Save(ctx context.Context, filename string, data []byte, opt storage.PutObjectOptions) (storage.Location, storage.ObjectInfo, error) {
	args := m.Called(ctx, filename, data, opt)
	return args.Get(0).(storage.Location), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockAttachmentStore) Open(ctx context.Context, loc storage.Location) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, loc)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockAttachmentStore) Remove(ctx context.Context, loc storage.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}
