package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("Secr3tPass!")
	require.NoError(t, err)
	second, err := h.Hash("Secr3tPass!")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.Verify("Secr3tPass!", first))
	require.True(t, h.Verify("Secr3tPass!", second))
}

func TestHash_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	for _, plaintext := range []string{"", "   ", "\t\n"} {
		_, err := h.Hash(plaintext)
		require.ErrorIs(t, err, ErrEmptyPassword)
	}
}

func TestVerify_FailsClosed(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	require.False(t, h.Verify("wrong horse", hash))
	require.False(t, h.Verify("", hash))
	require.False(t, h.Verify("correct horse", ""))
	require.False(t, h.Verify("correct horse", "not-a-bcrypt-hash"))
	require.False(t, h.Verify("correct horse", "$2a$garbage"))
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(99)
	hash, err := h.Hash("pw12345678")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}
