package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesDistinctDigests(t *testing.T) {
	first, err := HashPassword("pw123")
	require.NoError(t, err)
	second, err := HashPassword("pw123")
	require.NoError(t, err)

	// The salt is regenerated per call.
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "pw123", first)
}

func TestCheckPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword("correct horse battery staple", digest))
	assert.ErrorIs(t, CheckPassword("wrong", digest), ErrMismatch)
}

func TestHashPasswordEmptyInput(t *testing.T) {
	digest, err := HashPassword("")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword("", digest))
	assert.ErrorIs(t, CheckPassword("not empty", digest), ErrMismatch)
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	err := CheckPassword("pw123", "not-a-bcrypt-digest")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDigest)
	assert.False(t, errors.Is(err, ErrMismatch))
}
