package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	require.Len(t, strings.Split(hash, "$"), 2)

	ok, err := VerifyPassword(hash, "hunter2!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong2!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	weak := []string{
		"short",    // too short
		"longpassword", // no number, no special
		"password1",    // no special
		"password!",    // no number
	}

	for _, password := range weak {
		_, err := HashPassword(password)
		assert.Errorf(t, err, "password %q should be rejected", password)
	}
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	first, err := HashPassword("hunter2!")
	require.NoError(t, err)
	second, err := HashPassword("hunter2!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("not-a-stored-hash", "hunter2!")
	assert.Error(t, err)
}
