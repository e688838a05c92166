// Package crypto provides AES-256-GCM sealing of short strings under a
// single passphrase-derived key. There is no per-record key rotation;
// this is obfuscation for low-value fields, not protection for
// regulated data at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters. The salt is fixed: one global key per
// deployment, derived once from the configured passphrase.
const (
	keyLen     = 32
	iterations = 4096
)

var derivationSalt = []byte("booklyo.field.v1")

// ErrInvalidCiphertext is returned when decryption input is malformed
// or fails authentication.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// Cipher seals and opens short strings with one derived key.
type Cipher struct {
	aead cipher.AEAD
}

// New derives the key from the passphrase and prepares the AEAD.
func New(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, errors.New("crypto: empty passphrase")
	}
	key := pbkdf2.Key([]byte(passphrase), derivationSalt, iterations, keyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new GCM: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals the plaintext and returns base64(nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypto: nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Tampered or foreign input yields
// ErrInvalidCiphertext.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) < c.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}
	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
