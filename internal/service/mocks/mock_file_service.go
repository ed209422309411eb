package mocks

import (
	"context"
	"io"

	"storeapi/internal/auth"
	"storeapi/internal/model"
	"storeapi/internal/query"
	"storeapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, sess auth.Session, r io.Reader, originalFilename string, size int64) (*model.File, error) {
	args := m.Called(ctx, sess, r, originalFilename, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, sess auth.Session, opts query.Options) (*service.FileListResult, error) {
	args := m.Called(ctx, sess, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileListResult), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, sess auth.Session, id string) (*model.File, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Rename(ctx context.Context, sess auth.Session, id, newName string) (*model.File, error) {
	args := m.Called(ctx, sess, id, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Share(ctx context.Context, sess auth.Session, id string, emails []string) (*model.File, error) {
	args := m.Called(ctx, sess, id, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Unshare(ctx context.Context, sess auth.Session, id, email string) (*model.File, error) {
	args := m.Called(ctx, sess, id, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, sess auth.Session, id string) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockFileService) Download(ctx context.Context, sess auth.Session, id string) (string, error) {
	args := m.Called(ctx, sess, id)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) TotalSpaceUsed(ctx context.Context, sess auth.Session) (*model.SpaceUsage, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SpaceUsage), args.Error(1)
}
