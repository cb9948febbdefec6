// Package secrets provides Box, a symmetric encryption boundary for small
// payloads that must be stored encrypted at rest (TOTP secrets, recovery-code
// sets).
//
// A Box is built once at process start from a 32-byte master key. The master
// key never encrypts data directly: a purpose-bound subkey is derived with
// HKDF-SHA-256, so the same master key can back several boxes without their
// ciphertexts being interchangeable.
//
// Encryption uses AES-256 in GCM mode. The random nonce is prepended to the
// ciphertext so every blob is self-contained. GCM authenticates the payload,
// so tampered or foreign-key ciphertext fails with ErrDecryptionFailed and is
// never returned as corrupted plaintext.
//
// # Usage
//
//	import "github.com/dmitrymomot/authkit/pkg/secrets"
//
//	var cfg secrets.Config
//	config.MustLoad(&cfg)
//
//	box, err := secrets.NewBoxFromBase64(cfg.EncryptionKey, secrets.PurposeRecoveryCodes)
//	if err != nil {
//	    // secrets.ErrCryptoUnavailable
//	}
//
//	ct, _ := box.Encrypt([]byte(`["a","b"]`))
//	pt, err := box.Decrypt(ct)
//
// # Error Handling
//
// Construction problems (missing or malformed key) wrap ErrCryptoUnavailable.
// Decryption problems wrap ErrDecryptionFailed. Both are system faults and must
// not be treated as "no data".
//
// A Box is immutable after construction and safe for concurrent use.
package secrets
