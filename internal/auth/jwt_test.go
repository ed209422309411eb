package auth

import (
	"testing"
	"time"

	"storeapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, ttlMin int) *TokenService {
	t.Helper()
	svc, err := NewTokenService(config.AuthConfig{
		Secret:      testSecret,
		Issuer:      "storeapi-test",
		TokenTTLMin: ttlMin,
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService(config.AuthConfig{Secret: "too-short"})
	assert.ErrorIs(t, err, ErrInvalidSecretLength)
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestService(t, 60)

	token, expiresAt, err := svc.Issue("acc-123", "me@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	sess, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-123", sess.AccountID)
	assert.Equal(t, "me@example.com", sess.Email)
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := newTestService(t, 60)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsWrongKey(t *testing.T) {
	svc := newTestService(t, 60)
	other, err := NewTokenService(config.AuthConfig{Secret: "ffffffffffffffffffffffffffffffff"})
	require.NoError(t, err)

	token, _, err := svc.Issue("acc-1", "a@example.com")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsExpired(t *testing.T) {
	svc := newTestService(t, 60)
	// Force an already expired token by shrinking the ttl directly.
	svc.ttl = -time.Minute

	token, _, err := svc.Issue("acc-1", "a@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
