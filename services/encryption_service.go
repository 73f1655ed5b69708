package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEncryptionKeyNotSet indicates no DATA_ENCRYPTION_KEY is configured
	ErrEncryptionKeyNotSet = errors.New("DATA_ENCRYPTION_KEY is not set")
	// ErrInvalidCiphertext indicates the ciphertext is malformed or too short
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// FieldCipher encrypts lead contact fields at rest with AES-256-GCM.
// A nil *FieldCipher passes values through unchanged.
type FieldCipher struct {
	gcm cipher.AEAD
}

// NewFieldCipher builds a cipher from a base64-encoded 32-byte key.
func NewFieldCipher(encodedKey string) (*FieldCipher, error) {
	if encodedKey == "" {
		return nil, ErrEncryptionKeyNotSet
	}

	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}

	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes (got %d bytes)", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &FieldCipher{gcm: gcm}, nil
}

// Encrypt returns base64(nonce || ciphertext). Empty strings stay empty.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if c == nil || plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *FieldCipher) Decrypt(ciphertext string) (string, error) {
	if c == nil || ciphertext == "" {
		return ciphertext, nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	if len(data) < c.gcm.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, cipherData := data[:c.gcm.NonceSize()], data[c.gcm.NonceSize():]
	plaintext, err := c.gcm.Open(nil, nonce, cipherData, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}

// GenerateEncryptionKey generates a new random 32-byte key for AES-256 and returns it as base64.
func GenerateEncryptionKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
