package utils

import (
	"testing"

	"github.com/minhtran-dev/vietshop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd")
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd", hash)

	assert.True(t, CheckPassword("Passw0rd", hash))
	assert.False(t, CheckPassword("wrongpass1", hash))
	assert.False(t, CheckPassword("Passw0rd", "not-a-hash"))
}

func TestRandomPassword(t *testing.T) {
	first, err := RandomPassword()
	require.NoError(t, err)
	second, err := RandomPassword()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, AppName)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	user := models.User{
		Model: gorm.Model{ID: 42},
		Email: "user@example.com",
	}

	token, err := GenerateToken(&user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	user := models.User{Model: gorm.Model{ID: 7}, Email: "user@example.com"}
	token, err := GenerateToken(&user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
