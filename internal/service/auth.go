package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storeapi/internal/auth"
	"storeapi/internal/model"
	"storeapi/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or secret")
)

// SignInResult bundles the account with its freshly issued session token.
type SignInResult struct {
	Account   *model.Account `json:"account"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// AuthService covers account registration, sign-in, and resolving the
// current account from a validated session.
type AuthService interface {
	SignUp(ctx context.Context, fullName, email, secret string) (*SignInResult, error)
	SignIn(ctx context.Context, email, secret string) (*SignInResult, error)
	CurrentAccount(ctx context.Context, sess auth.Session) (*model.Account, error)
}

type authService struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenService
}

// NewAuthService constructs a new AuthService.
func NewAuthService(accounts repository.AccountRepository, tokens *auth.TokenService) AuthService {
	return &authService{accounts: accounts, tokens: tokens}
}

func (s *authService) SignUp(ctx context.Context, fullName, email, secret string) (*SignInResult, error) {
	_, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !isNoRows(err):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	acc, err := s.accounts.Create(ctx, &model.Account{
		ID:         uuid.New().String(),
		FullName:   fullName,
		Email:      email,
		SecretHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.issue(acc)
}

func (s *authService) SignIn(ctx context.Context, email, secret string) (*SignInResult, error) {
	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			// Same failure as a wrong secret: don't reveal which accounts exist.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.SecretHash), []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(acc)
}

func (s *authService) CurrentAccount(ctx context.Context, sess auth.Session) (*model.Account, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	acc, err := s.accounts.FindByID(ctx, sess.AccountID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return acc, nil
}

func (s *authService) issue(acc *model.Account) (*SignInResult, error) {
	token, expiresAt, err := s.tokens.Issue(acc.ID, acc.Email)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return &SignInResult{Account: acc, Token: token, ExpiresAt: expiresAt}, nil
}
