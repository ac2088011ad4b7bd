package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/voucherhub/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Set("JWT_SECRET", "test-secret")
	t.Cleanup(func() { config.Set("JWT_SECRET", "") })

	access, err := GenerateToken("64b7f0c2a1b2c3d4e5f60718", "admin")
	require.NoError(t, err)

	claims, err := ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	refresh, err := GenerateRefreshToken("64b7f0c2a1b2c3d4e5f60718", "customer")
	require.NoError(t, err)
	_, err = ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	config.Set("JWT_SECRET", "one")
	tok, err := GenerateToken("u1", "customer")
	require.NoError(t, err)

	config.Set("JWT_SECRET", "two")
	t.Cleanup(func() { config.Set("JWT_SECRET", "") })

	_, err = ValidateToken(tok)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("ChangeMe123!")
	require.NoError(t, err)
	assert.NotEqual(t, "ChangeMe123!", hash)
	assert.True(t, CheckPassword(hash, "ChangeMe123!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
