package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	assert.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, VerifyPassword("admin123", hash))
	assert.False(t, VerifyPassword("admin124", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("acc123")
	assert.NoError(t, err)
	second, err := HashPassword("acc123")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
