package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService(Options{
		SecretKey:                  "test-secret-key-for-jwt",
		AccessTokenExpirationTime:  "1h",
		RefreshTokenExpirationTime: "24h",
		KioskTokenExpirationTime:   "720h",
	})
}

func TestGenerateKioskToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateKioskToken("store-1")
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(720*time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims := decoded.PrivateClaims()
	assert.Equal(t, TypeKiosk, claims["type"])
	assert.Equal(t, "store-1", claims["store_id"])
	assert.NotEmpty(t, decoded.JwtID())

	again, _, err := svc.GenerateKioskToken("store-1")
	require.NoError(t, err)
	assert.NotEqual(t, token, again)
}

func TestParseRefreshToken(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	access, _, err := svc.GenerateAccessToken("user-1", "admin@example.com")
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ParseRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestBadDuration(t *testing.T) {
	svc := NewJWTService(Options{SecretKey: "x", AccessTokenExpirationTime: "soon"})
	_, _, err := svc.GenerateAccessToken("user-1", "admin@example.com")
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService(Options{SecretKey: "x", SecureCookie: true})
	cookie := svc.RefreshTokenCookie("tok", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}
