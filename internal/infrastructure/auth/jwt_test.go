package auth

import (
	"testing"
	"time"

	"github.com/bizledger/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars-long",
		AccessTokenExpiration: expiration,
		Issuer:                "ledger-backend-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestService(15 * time.Minute)
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "ledger-backend-test", claims.Issuer)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)

	token, _, err := service.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	service := newTestService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-32-char-secret!!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "ledger-backend-test",
	})

	token, _, err := service.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	service := newTestService(15 * time.Minute)

	_, err := service.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
