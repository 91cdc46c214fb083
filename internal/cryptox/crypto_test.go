package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	k1 := DeriveKey([]byte("secret"), []byte("salt-1"))
	k2 := DeriveKey([]byte("secret"), []byte("salt-1"))
	k3 := DeriveKey([]byte("secret"), []byte("salt-2"))

	require.Len(t, k1, KeySize)
	require.Equal(t, k1, k2)
	require.NotEqual(t, k1, k3)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt"))
	plain := []byte("eyJhbGciOiJIUzI1NiJ9.payload.sig")

	sealed, err := Seal(plain, key)
	require.NoError(t, err)
	require.False(t, bytes.Contains(sealed, plain), "sealed value must not contain the plaintext")

	got, err := Open(sealed, key)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestSeal_FreshNonceEachTime(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt"))
	a, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	sealed, err := Seal([]byte("token"), DeriveKey([]byte("a"), []byte("salt")))
	require.NoError(t, err)

	_, err = Open(sealed, DeriveKey([]byte("b"), []byte("salt")))
	require.Error(t, err)
}

func TestOpen_ShortInput(t *testing.T) {
	_, err := Open([]byte{1, 2}, DeriveKey([]byte("a"), []byte("salt")))
	require.ErrorIs(t, err, ErrShortCiphertext)
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(16)
	require.NoError(t, err)
	b, err := RandomBytes(16)
	require.NoError(t, err)
	require.Len(t, a, 16)
	require.NotEqual(t, a, b)
}
