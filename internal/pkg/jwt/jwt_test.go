package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	t.Run("round trip", func(t *testing.T) {
		token, _, err := svc.GenerateRefreshToken("u1")
		require.NoError(t, err)

		userID, err := svc.ValidateRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("u1", "u1@example.com", "manager", 70)
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(token)
		assert.Error(t, err)
	})
}

func TestRevokeToken(t *testing.T) {
	// TTL short enough that the first revocation has expired by the
	// time the second one triggers the sweep.
	svc := NewJWTService("test-secret", "15m", "1ms")

	svc.RevokeToken("first")
	assert.True(t, svc.IsTokenRevoked("first"))

	time.Sleep(10 * time.Millisecond)

	svc.RevokeToken("second")
	assert.False(t, svc.IsTokenRevoked("first"))
	assert.True(t, svc.IsTokenRevoked("second"))
}
