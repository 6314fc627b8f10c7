package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	require.True(t, VerifyPassword("pw", hash))
	require.False(t, VerifyPassword("bad", hash))
	require.False(t, VerifyPassword("pw", "not-a-bcrypt-hash"))
	require.False(t, VerifyPassword("pw", ""))
}

func TestBurnPasswordCompare(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := 0
	bcryptCompareHashAndPassword = func(hash, pw []byte) error {
		called++
		require.NotEmpty(t, hash)
		return errors.New("mismatch")
	}
	BurnPasswordCompare("whatever")
	BurnPasswordCompare("again")
	require.Equal(t, 2, called)
}
