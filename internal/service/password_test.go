package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, CheckPassword("correct horse battery staple", digest))
	assert.False(t, CheckPassword("wrong password", digest))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("password123")
	require.NoError(t, err)
	second, err := HashPassword("password123")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so digests differ while both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("password123", first))
	assert.True(t, CheckPassword("password123", second))
}

func TestCheckPassword_InvalidDigest(t *testing.T) {
	assert.False(t, CheckPassword("password123", "not-a-bcrypt-digest"))
	assert.False(t, CheckPassword("password123", ""))
}

func TestCheckPassword_MutatedDigest(t *testing.T) {
	digest, err := HashPassword("password123")
	require.NoError(t, err)

	mutated := []byte(digest)
	mutated[len(mutated)-1] ^= 0x01
	assert.False(t, CheckPassword("password123", string(mutated)))
}
