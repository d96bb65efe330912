// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(7, "María", "maria@admin.cl", "admin", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "María", claims.Name)
	assert.Equal(t, "maria@admin.cl", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "fullsound", claims.Issuer)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)

	_, err = ValidateJWT("")
	assert.Error(t, err)
}

func TestValidateJWTRejectsForeignSecret(t *testing.T) {
	token, err := GenerateJWT(1, "x", "x@gmail.com", "usuario", 1)
	require.NoError(t, err)

	SetJWTSecret("other-secret")
	defer SetJWTSecret("fullsound-dev-secret-change-me")

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
