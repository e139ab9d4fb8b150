package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	second, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	require.NotEqual(t, "s3cret", first)
	require.NotEqual(t, first, second, "salted hashes of equal input should differ")
	require.True(t, hasher.Verify("s3cret", first))
	require.True(t, hasher.Verify("s3cret", second))
	require.False(t, hasher.Verify("wrong", first))
}

func TestPasswordHasherCorruptDigestIsMismatch(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	require.False(t, hasher.Verify("s3cret", ""))
	require.False(t, hasher.Verify("s3cret", "not-a-bcrypt-digest"))
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	require.Equal(t, DefaultBcryptCost, NewPasswordHasher(bcrypt.MaxCost+1).cost)
	require.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).cost)
}
