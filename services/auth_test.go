package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	password := "SecretPass123!"

	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, VerifyPassword(hash, password))
	assert.False(t, VerifyPassword(hash, "WrongPass"))
	assert.False(t, VerifyPassword("not-a-hash", password))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)
}
