// Package auth issues and validates the session tokens that identify the
// current account on every request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storeapi/internal/config"
)

// Common errors for token operations.
var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrTokenSigningFailed  = errors.New("failed to sign token")
	ErrInvalidSecretLength = errors.New("auth secret must be at least 32 characters")
)

// Claims are the session token claims: the account's identity as the
// rest of the system sees it.
type Claims struct {
	jwt.RegisteredClaims

	// AccountID is the unique identifier (UUID) of the account.
	AccountID string `json:"account_id"`

	// Email is the account's email, used for shared-file visibility.
	Email string `json:"email"`
}

// Session is what a validated token resolves to: the current account.
type Session struct {
	AccountID string
	Email     string
}

// TokenService signs and validates HS256 session tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService builds a TokenService from configuration. The secret
// must be at least 32 characters.
func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "storeapi"
	}
	ttl := time.Duration(cfg.TokenTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &TokenService{secret: []byte(cfg.Secret), issuer: issuer, ttl: ttl}, nil
}

// Issue creates a signed session token for the given account identity.
func (s *TokenService) Issue(accountID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AccountID: accountID,
		Email:     email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, ErrTokenSigningFailed
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token string and returns the session it
// carries. Expired or tampered tokens fail with the sentinel errors above.
func (s *TokenService) Validate(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.AccountID == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Session{AccountID: claims.AccountID, Email: claims.Email}, nil
}
