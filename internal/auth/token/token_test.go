package token

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	signed, err := Issue("secret", "42", "admin", "admin", DefaultTTL)
	require.NoError(t, err)

	claims, err := Parse("secret", signed)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, "admin", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := Issue("secret", "42", "admin", "admin", DefaultTTL)
	require.NoError(t, err)

	_, err = Parse("other-secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Only HS256 is accepted; a token signed with any other method must be
// rejected even when the HMAC key would otherwise verify it.
func TestParseRejectsForeignSigningMethod(t *testing.T) {
	claims := Claims{
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = Parse("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	signed, err := Issue("secret", "42", "admin", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = Parse("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
