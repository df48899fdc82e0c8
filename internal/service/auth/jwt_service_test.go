package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/config"
)

const testSecret = "test-secret-key-thats-at-least-32-chars"

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 42, "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	// Issue a token two hours in the past; lifetime is one hour and clock
	// skew two minutes, so it is well past expiry.
	issued := time.Now().Add(-2 * time.Hour)
	svc.timeFunc = func() time.Time { return issued }
	token, err := svc.GenerateToken(ctx, 42, "jane@example.com")
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WithinClockSkew(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	// Token expired one minute ago, inside the two minute skew allowance.
	issued := time.Now().Add(-61 * time.Minute)
	svc.timeFunc = func() time.Time { return issued }
	token, err := svc.GenerateToken(ctx, 42, "jane@example.com")
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "a-completely-different-32-char-secret!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, 42, "jane@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongTokenType(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	now := time.Now()

	claims := jwtCustomClaims{
		UserID:    42,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jane@example.com",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			ID:        "test-id",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	now := time.Now()

	claims := jwtCustomClaims{
		UserID:    42,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jane@example.com",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
