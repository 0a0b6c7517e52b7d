// Package cryptox implements the password-based note primitives: key
// derivation, authenticated encryption, the verifier hash bound to a derived
// key and the unsalted lookup hash used as a store index.
//
// Nothing here keeps process-wide state. Randomness comes from the io.Reader
// held by a Suite, so tests can substitute a deterministic source.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the derived key length (AES-256).
	KeySize = 32
	// SaltSize is the per-note salt length.
	SaltSize = 16
	// IVSize is the AES-GCM nonce length.
	IVSize = 12
	// DefaultIterations is the PBKDF2 work factor. Changing it makes
	// previously stored notes unreadable.
	DefaultIterations = 200_000
)

var (
	// ErrKeyDerivation reports a failure of the derivation primitive or of the
	// salt source. It is not retried.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrAuthentication is returned for every decryption failure: tag
	// mismatch, truncated or corrupted ciphertext, bad nonce.
	ErrAuthentication = errors.New("authentication failed")
)

// Suite bundles the tunable parameters and the randomness capability.
// A zero Suite is not usable; build one with NewSuite.
type Suite struct {
	random     io.Reader
	iterations int
}

// Option configures a Suite.
type Option func(*Suite)

// WithRandom replaces crypto/rand as the source of salts and IVs.
func WithRandom(r io.Reader) Option {
	return func(s *Suite) { s.random = r }
}

// WithIterations overrides the PBKDF2 iteration count. Values below 1 are ignored.
func WithIterations(n int) Option {
	return func(s *Suite) {
		if n > 0 {
			s.iterations = n
		}
	}
}

func NewSuite(opts ...Option) *Suite {
	s := &Suite{random: rand.Reader, iterations: DefaultIterations}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Iterations reports the configured PBKDF2 work factor.
func (s *Suite) Iterations() int {
	return s.iterations
}

// DeriveKey stretches password into a KeySize key with PBKDF2-HMAC-SHA256.
//
// When salt is nil a fresh SaltSize salt is drawn from the suite's random
// source; otherwise salt must be exactly SaltSize bytes. The salt actually
// used is returned alongside the key so the caller can persist it.
func (s *Suite) DeriveKey(password, salt []byte) (key, usedSalt []byte, err error) {
	if salt == nil {
		salt = make([]byte, SaltSize)
		if _, err := io.ReadFull(s.random, salt); err != nil {
			return nil, nil, fmt.Errorf("%w: salt: %v", ErrKeyDerivation, err)
		}
	}
	if len(salt) != SaltSize {
		return nil, nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrKeyDerivation, SaltSize, len(salt))
	}

	key = pbkdf2.Key(password, salt, s.iterations, KeySize, sha256.New)
	return key, salt, nil
}

// Encrypt seals plaintext with AES-256-GCM under key using a fresh random
// IV. There is deliberately no variant that accepts a caller IV.
func (s *Suite) Encrypt(key, plaintext []byte) (ciphertext, iv []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	iv = make([]byte, IVSize)
	if _, err := io.ReadFull(s.random, iv); err != nil {
		return nil, nil, fmt.Errorf("iv: %w", err)
	}

	ciphertext = aead.Seal(nil, iv, plaintext, nil)
	return ciphertext, iv, nil
}

// Decrypt opens ciphertext produced by Encrypt. Any failure is reported as
// ErrAuthentication and no plaintext is returned.
func (s *Suite) Decrypt(key, ciphertext, iv []byte) ([]byte, error) {
	if len(iv) != IVSize {
		return nil, ErrAuthentication
	}
	aead, err := newGCM(key)
	if err != nil {
		return nil, ErrAuthentication
	}
	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
