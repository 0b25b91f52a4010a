package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	cfg := DefaultPasswordConfig()

	hash, salt, err := HashPassword("bootcamp123", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)

	match, err := VerifyPassword("bootcamp123", hash, salt, cfg)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyPassword("wrong-password", hash, salt, cfg)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPassword_UniqueSaltPerCall(t *testing.T) {
	cfg := DefaultPasswordConfig()

	hash1, salt1, err := HashPassword("bootcamp123", cfg)
	require.NoError(t, err)
	hash2, salt2, err := HashPassword("bootcamp123", cfg)
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword_CorruptSalt(t *testing.T) {
	cfg := DefaultPasswordConfig()

	hash, _, err := HashPassword("bootcamp123", cfg)
	require.NoError(t, err)

	match, err := VerifyPassword("bootcamp123", hash, "not-base64!!!", cfg)
	assert.Error(t, err)
	assert.False(t, match)
}

func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString(16)
	require.NoError(t, err)
	s2, err := GenerateRandomString(16)
	require.NoError(t, err)

	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
}
