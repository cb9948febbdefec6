package mfa

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/totp"
)

// RecoveryCodes generates, seals and consumes single-use backup codes.
// The sealed form is a Box ciphertext of the JSON-encoded code list.
type RecoveryCodes struct {
	box    *secrets.Box
	length int
}

// NewRecoveryCodes returns a store that seals code lists with box.
// The box should be built for secrets.PurposeRecoveryCodes.
func NewRecoveryCodes(box *secrets.Box) *RecoveryCodes {
	return &RecoveryCodes{box: box, length: totp.DefaultRecoveryCodeLength}
}

// Generate returns count fresh codes together with their sealed form.
// The plaintext codes must be shown to the user once and then discarded.
func (r *RecoveryCodes) Generate(count int) ([]string, []byte, error) {
	codes, err := totp.GenerateRecoveryCodes(count, r.length)
	if err != nil {
		return nil, nil, err
	}

	blob, err := r.seal(codes)
	if err != nil {
		return nil, nil, err
	}
	return codes, blob, nil
}

// Consume removes code from the sealed list. An empty blob or a code that is
// not in the list yields (false, blob, nil). When the last code is consumed
// the returned blob is nil.
func (r *RecoveryCodes) Consume(blob []byte, code string) (bool, []byte, error) {
	if len(blob) == 0 || code == "" {
		return false, blob, nil
	}

	codes, err := r.open(blob)
	if err != nil {
		return false, blob, err
	}

	idx := -1
	for i, candidate := range codes {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(code)) == 1 && idx < 0 {
			idx = i
		}
	}
	if idx < 0 {
		return false, blob, nil
	}

	remaining := append(codes[:idx:idx], codes[idx+1:]...)
	if len(remaining) == 0 {
		return true, nil, nil
	}

	next, err := r.seal(remaining)
	if err != nil {
		return false, blob, err
	}
	return true, next, nil
}

// Remaining returns the number of unconsumed codes in blob.
func (r *RecoveryCodes) Remaining(blob []byte) (int, error) {
	if len(blob) == 0 {
		return 0, nil
	}
	codes, err := r.open(blob)
	if err != nil {
		return 0, err
	}
	return len(codes), nil
}

func (r *RecoveryCodes) seal(codes []string) ([]byte, error) {
	raw, err := json.Marshal(codes)
	if err != nil {
		return nil, fmt.Errorf("encode recovery codes: %w", err)
	}
	return r.box.Encrypt(raw)
}

func (r *RecoveryCodes) open(blob []byte) ([]string, error) {
	raw, err := r.box.Decrypt(blob)
	if err != nil {
		return nil, err
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, errors.Join(secrets.ErrDecryptionFailed, fmt.Errorf("decode recovery codes: %w", err))
	}
	return codes, nil
}
