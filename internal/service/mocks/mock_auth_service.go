package mocks

import (
	"context"

	"storeapi/internal/auth"
	"storeapi/internal/model"
	"storeapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, fullName, email, secret string) (*service.SignInResult, error) {
	args := m.Called(ctx, fullName, email, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignInResult), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, secret string) (*service.SignInResult, error) {
	args := m.Called(ctx, email, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignInResult), args.Error(1)
}

func (m *MockAuthService) CurrentAccount(ctx context.Context, sess auth.Session) (*model.Account, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}
