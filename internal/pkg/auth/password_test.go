package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, CheckPassword(hash, "Secret123"))
	assert.False(t, CheckPassword(hash, "Secret124"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPasswordRejectsMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-hash", "Secret123"))
}
