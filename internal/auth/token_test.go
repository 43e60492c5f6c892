package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/backend/pkg/e"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("test-secret", "admin", RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("test-secret", "cashier", RoleCashier, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.ErrorIs(t, err, e.ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueToken("test-secret", "cashier", RoleCashier, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("test-secret", token)
	assert.ErrorIs(t, err, e.ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("test-secret", "not-a-token")
	assert.ErrorIs(t, err, e.ErrInvalidToken)
}

func TestVerifyPassword(t *testing.T) {
	digest := HashPassword("admin123")

	assert.True(t, VerifyPassword("admin123", digest))
	assert.False(t, VerifyPassword("admin124", digest))
	assert.False(t, VerifyPassword("", digest))
}
