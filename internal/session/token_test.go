package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters!"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "sess-1", RoleUser, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "sess-1", RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret-that-is-also-32-chars!!")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("user-1", "sess-1", RoleUser, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("user-1", "sess-1", RoleUser, "", time.Hour)
	assert.Error(t, err)
}
