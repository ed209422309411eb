package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"storeapi/internal/auth"
	"storeapi/internal/config"
	"storeapi/internal/model"
	repoMocks "storeapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*repoMocks.MockAccountRepository, AuthService) {
	t.Helper()
	tokens, err := auth.NewTokenService(config.AuthConfig{
		Secret:      "0123456789abcdef0123456789abcdef",
		TokenTTLMin: 60,
	})
	require.NoError(t, err)

	mAccounts := new(repoMocks.MockAccountRepository)
	return mAccounts, NewAuthService(mAccounts, tokens)
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and issues token", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)

		mAccounts.On("FindByEmail", ctx, "new@example.com").Return(nil, sql.ErrNoRows)
		mAccounts.On("Create", ctx, mock.MatchedBy(func(a *model.Account) bool {
			if a.ID == "" || a.Email != "new@example.com" || a.FullName != "New User" {
				return false
			}
			// The stored secret must be a hash, never the plaintext.
			return bcrypt.CompareHashAndPassword([]byte(a.SecretHash), []byte("hunter2-hunter2")) == nil
		})).Return(&model.Account{ID: "acc-9", Email: "new@example.com"}, nil)

		res, err := svc.SignUp(ctx, "New User", "new@example.com", "hunter2-hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "acc-9", res.Account.ID)
		mAccounts.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)
		mAccounts.On("FindByEmail", ctx, "taken@example.com").
			Return(&model.Account{ID: "acc-1", Email: "taken@example.com"}, nil)

		_, err := svc.SignUp(ctx, "X", "taken@example.com", "secret-secret")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)
		mAccounts.On("FindByEmail", ctx, "x@example.com").Return(nil, errors.New("db down"))

		_, err := svc.SignUp(ctx, "X", "x@example.com", "secret-secret")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	acc := &model.Account{ID: "acc-1", Email: "me@example.com", SecretHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)
		mAccounts.On("FindByEmail", ctx, "me@example.com").Return(acc, nil)

		res, err := svc.SignIn(ctx, "me@example.com", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "acc-1", res.Account.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)
		mAccounts.On("FindByEmail", ctx, "me@example.com").Return(acc, nil)

		_, err := svc.SignIn(ctx, "me@example.com", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email reads as invalid credentials", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)
		mAccounts.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

		_, err := svc.SignIn(ctx, "ghost@example.com", "whatever-secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_CurrentAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves session to account", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)
		mAccounts.On("FindByID", ctx, "acc-1").
			Return(&model.Account{ID: "acc-1", Email: "me@example.com"}, nil)

		acc, err := svc.CurrentAccount(ctx, auth.Session{AccountID: "acc-1", Email: "me@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "acc-1", acc.ID)
	})

	t.Run("zero session", func(t *testing.T) {
		_, svc := newAuthService(t)
		_, err := svc.CurrentAccount(ctx, auth.Session{})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("vanished account", func(t *testing.T) {
		mAccounts, svc := newAuthService(t)
		mAccounts.On("FindByID", ctx, "acc-1").Return(nil, sql.ErrNoRows)

		_, err := svc.CurrentAccount(ctx, auth.Session{AccountID: "acc-1", Email: "me@example.com"})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
