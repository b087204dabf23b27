package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-provider-key"))
	require.NoError(t, err)
	return s
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, Claims{
		UserID:        "uid-1",
		Email:         "a@b.c",
		EmailVerified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	c, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", c.UserID)
	assert.Equal(t, "a@b.c", c.Email)
	assert.True(t, c.EmailVerified)
	assert.False(t, c.Expired(time.Now()))
	assert.True(t, c.Expired(exp.Add(time.Second)))
}

func TestParseClaims_SubjectFallback(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{Subject: "uid-9"})

	c, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-9", c.UserID)
	assert.False(t, c.Expired(time.Now()))
}

func TestParseClaims_Malformed(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}
