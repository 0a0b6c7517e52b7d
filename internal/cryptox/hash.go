package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// LookupHash returns SHA-256 of the password bytes with no salt.
//
// Every note stored under the same password shares this value, which is what
// lets the store answer a password-only lookup with an indexed equality
// query. The flip side is that anyone able to read the store can run a
// precomputed dictionary against it.
func LookupHash(password []byte) []byte {
	sum := sha256.Sum256(password)
	return sum[:]
}

// VerifierHash returns SHA-256 of derived key material. Because the key
// depends on the note's salt, the verifier differs between notes even when
// they share a password.
func VerifierHash(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:]
}

// VerifierMatches compares VerifierHash(key) with a stored verifier in
// constant time.
func VerifierMatches(key, stored []byte) bool {
	return subtle.ConstantTimeCompare(VerifierHash(key), stored) == 1
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// EncodeB64 is the binary-safe text encoding used for note fields in JSON.
func EncodeB64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeB64 reverses EncodeB64.
func DecodeB64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
