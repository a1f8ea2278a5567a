package services_test

import (
	"testing"

	"portal/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Salted(t *testing.T) {
	h1, err := services.HashPassword("admin888")
	require.NoError(t, err)
	h2, err := services.HashPassword("admin888")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.NotContains(t, h1, "admin888")
	assert.True(t, services.VerifyPassword("admin888", h1))
	assert.True(t, services.VerifyPassword("admin888", h2))
	assert.False(t, services.VerifyPassword("admin889", h1))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := services.HashPassword("")
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	assert.False(t, services.VerifyPassword("x", "not-a-bcrypt-hash"))
	assert.False(t, services.VerifyPassword("x", ""))
}
