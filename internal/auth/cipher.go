package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrSealedTokenInvalid is returned when a sealed value cannot be decoded or authenticated.
var ErrSealedTokenInvalid = errors.New("sealed token invalid")

// TokenSealer encrypts platform credentials before they are persisted.
// Output is base64(nonce || ciphertext) using AES-256-GCM.
type TokenSealer struct {
	aead cipher.AEAD
}

// NewTokenSealer builds a sealer from a 32-byte key.
func NewTokenSealer(key string) (*TokenSealer, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("token encryption key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &TokenSealer{aead: aead}, nil
}

// Seal encrypts plain. Empty input stays empty.
func (s *TokenSealer) Seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := s.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *TokenSealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrSealedTokenInvalid, err)
	}

	ns := s.aead.NonceSize()
	if len(raw) < ns {
		return "", fmt.Errorf("%w: too short", ErrSealedTokenInvalid)
	}

	plain, err := s.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealedTokenInvalid, err)
	}
	return string(plain), nil
}

// SealPtr is Seal for optional values.
func (s *TokenSealer) SealPtr(plain *string) (*string, error) {
	if plain == nil {
		return nil, nil
	}
	out, err := s.Seal(*plain)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenPtr is Open for optional values.
func (s *TokenSealer) OpenPtr(sealed *string) (*string, error) {
	if sealed == nil {
		return nil, nil
	}
	out, err := s.Open(*sealed)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
