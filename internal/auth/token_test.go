package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)
	user := &domain.User{ID: 7, Username: "ops", Role: domain.UserRoleAdmin}

	token, expiresAt, err := tm.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "ops", claims.Username)
	assert.Equal(t, domain.UserRoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.GenerateToken(&domain.User{ID: 1, Username: "ops", Role: domain.UserRoleAgent})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", 24)
	verifier := NewTokenManager("secret-b", 24)

	token, _, err := issuer.GenerateToken(&domain.User{ID: 1, Username: "ops", Role: domain.UserRoleAgent})
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenExpiredRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	claims := &Claims{
		UserID:   1,
		Username: "ops",
		Role:     domain.UserRoleAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenWrongSigningMethodRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	// alg=none tokens must never pass verification.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(unsigned)
	assert.Error(t, err)
}
