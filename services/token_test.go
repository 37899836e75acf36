package services

import (
	"os"
	"testing"

	"backend/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	os.Exit(m.Run())
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(utils.JWTSecretKey), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestGenerateToken(t *testing.T) {
	tokenString, err := GenerateToken("user-123")
	require.NoError(t, err)

	claims := parseClaims(t, tokenString)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.NotContains(t, claims, "type")
	assert.Greater(t, claims["exp"].(float64), claims["iat"].(float64))
}

func TestGenerateRefreshToken(t *testing.T) {
	tokenString, err := GenerateRefreshToken("user-123")
	require.NoError(t, err)

	claims := parseClaims(t, tokenString)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "refresh", claims["type"])
}
