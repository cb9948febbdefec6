package secrets

import "errors"

var (
	// Key/setup errors. Anything wrapping ErrCryptoUnavailable means the box cannot be used at all.
	ErrCryptoUnavailable = errors.New("secrets: crypto unavailable")
	ErrInvalidKeyLength  = errors.New("secrets: key must be 32 bytes")
	ErrEmptyKey          = errors.New("secrets: encryption key not set")

	// Encryption/decryption errors
	ErrEncryptionFailed  = errors.New("secrets: encryption failed")
	ErrDecryptionFailed  = errors.New("secrets: decryption failed")
	ErrInvalidCiphertext = errors.New("secrets: invalid ciphertext format")
)
