package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	raw, expires, err := issueToken(testSecret, "user-1", "a@b.c", "sid-1", now, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expires)

	claims, err := parseToken(testSecret, raw, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestToken_Rejections(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	raw, _, err := issueToken(testSecret, "user-1", "a@b.c", "sid-1", now, time.Hour)
	require.NoError(t, err)

	_, err = parseToken(testSecret, raw, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = parseToken([]byte("other"), raw, now)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	_, err = parseToken(testSecret, "not-a-token", now)
	assert.ErrorIs(t, err, ErrInvalidToken, "garbage")

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: "sid-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString(testSecret)
	require.NoError(t, err)
	_, err = parseToken(testSecret, signed, now)
	assert.ErrorIs(t, err, ErrInvalidToken, "foreign issuer")
}
