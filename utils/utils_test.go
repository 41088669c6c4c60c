package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "utils-test-secret")
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "bird@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "bird@example.com", claims.Email)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "late@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "a@b.com", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, CheckPassword(hash, "hunter22"))
	require.False(t, CheckPassword(hash, "hunter23"))
	require.False(t, CheckPassword("", "hunter22"))
}

func TestBlacklistMemoryFallback(t *testing.T) {
	// no Redis configured in tests, so the in-memory fallback handles this
	require.False(t, IsTokenBlacklisted("fresh-token"))

	BlacklistToken("revoked-token", time.Now().Add(time.Hour))
	require.True(t, IsTokenBlacklisted("revoked-token"))

	BlacklistToken("expired-entry", time.Now().Add(-time.Minute))
	require.False(t, IsTokenBlacklisted("expired-entry"))
}
