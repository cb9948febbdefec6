package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// Box encrypts and decrypts small payloads with a key fixed at construction.
type Box struct {
	aead cipher.AEAD
}

// NewBox builds a Box from a 32-byte master key and a purpose label.
// The master key slice is not retained.
func NewBox(master []byte, purpose Purpose) (*Box, error) {
	if len(master) != KeySize {
		return nil, errors.Join(ErrCryptoUnavailable, ErrInvalidKeyLength)
	}

	key, err := deriveKey(master, purpose)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrCryptoUnavailable, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrCryptoUnavailable, err)
	}

	return &Box{aead: aead}, nil
}

// NewBoxFromBase64 decodes a base64 master key and builds a Box from it.
func NewBoxFromBase64(encoded string, purpose Purpose) (*Box, error) {
	master, err := DecodeKey(encoded)
	if err != nil {
		return nil, err
	}
	defer clearBytes(master)
	return NewBox(master, purpose)
}

// Encrypt seals plaintext. The returned slice is nonce||ciphertext||tag.
func (b *Box) Encrypt(plaintext []byte) ([]byte, error) {
	if b == nil || b.aead == nil {
		return nil, ErrCryptoUnavailable
	}

	nonce := make([]byte, b.aead.NonceSize(), b.aead.NonceSize()+len(plaintext)+b.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return b.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt.
// Any failure, including tampering or a foreign key, wraps ErrDecryptionFailed.
func (b *Box) Decrypt(ciphertext []byte) ([]byte, error) {
	if b == nil || b.aead == nil {
		return nil, ErrCryptoUnavailable
	}

	nonceSize := b.aead.NonceSize()
	if len(ciphertext) < nonceSize+b.aead.Overhead() {
		return nil, errors.Join(ErrDecryptionFailed, ErrInvalidCiphertext)
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := b.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// EncryptString encrypts a string and returns base64 ciphertext.
func (b *Box) EncryptString(plaintext string) (string, error) {
	ct, err := b.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

// DecryptString reverses EncryptString.
func (b *Box) DecryptString(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, ErrInvalidCiphertext, err)
	}

	pt, err := b.Decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}
