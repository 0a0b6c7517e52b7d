package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupHash_KnownValue(t *testing.T) {
	// SHA-256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	assert.Equal(t, want, hex.EncodeToString(LookupHash([]byte("abc"))))
}

func TestLookupHash_StableAndSaltFree(t *testing.T) {
	s := fastSuite()
	pw := []byte("abc123")

	h1 := LookupHash(pw)
	_, _, err := s.DeriveKey(pw, nil)
	require.NoError(t, err)
	h2 := LookupHash(pw)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, LookupHash([]byte("abc124")))
}

func TestVerifier_BoundToSalt(t *testing.T) {
	s := fastSuite()
	pw := []byte("abc123")

	k1, _, err := s.DeriveKey(pw, bytes.Repeat([]byte{1}, SaltSize))
	require.NoError(t, err)
	k2, _, err := s.DeriveKey(pw, bytes.Repeat([]byte{2}, SaltSize))
	require.NoError(t, err)

	v1 := VerifierHash(k1)
	assert.True(t, VerifierMatches(k1, v1))
	assert.False(t, VerifierMatches(k2, v1))
	assert.NotEqual(t, v1, VerifierHash(k2))
	assert.False(t, VerifierMatches(k1, nil))
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	Wipe(nil)
}

func TestB64(t *testing.T) {
	in := []byte{0, 1, 2, 250, 251}
	s := EncodeB64(in)
	out, err := DecodeB64(s)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = DecodeB64("%%%")
	assert.Error(t, err)
}
