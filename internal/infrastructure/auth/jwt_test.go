package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration: expiration,
		Issuer:                "marketplace-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "buyer@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.NotEmpty(t, claims.ID)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "a@b.cc", "customer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-value",
		AccessTokenExpiration: time.Hour,
		Issuer:                "marketplace-test",
	})

	token, err := svc.GenerateToken(uuid.New(), "a@b.cc", "supplier")
	require.NoError(t, err)

	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, err := svc.GenerateToken(uuid.New(), "a@b.cc", "customer")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}
