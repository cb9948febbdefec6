package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the required master key size (AES-256).
const KeySize = 32

// Purpose labels the subkey derived from the master key.
type Purpose string

const (
	PurposeRecoveryCodes Purpose = "authkit-recovery-codes-v1"
	PurposeOTPSecret     Purpose = "authkit-otp-secret-v1"
)

func deriveKey(master []byte, purpose Purpose) ([]byte, error) {
	r := hkdf.New(sha256.New, master, nil, []byte(purpose))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrCryptoUnavailable, err)
	}
	return key, nil
}

// GenerateKey returns a new random master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// GenerateEncodedKey returns a new random master key encoded as base64,
// ready to be placed in RECOVERY_ENCRYPTION_KEY.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// DecodeKey decodes and checks a base64 master key.
func DecodeKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, errors.Join(ErrCryptoUnavailable, ErrEmptyKey)
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrCryptoUnavailable, err)
	}
	if len(key) != KeySize {
		return nil, errors.Join(ErrCryptoUnavailable, ErrInvalidKeyLength)
	}
	return key, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
