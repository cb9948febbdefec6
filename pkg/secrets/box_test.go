package secrets_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

func newBox(t *testing.T, purpose secrets.Purpose) (*secrets.Box, []byte) {
	t.Helper()
	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	box, err := secrets.NewBox(key, purpose)
	require.NoError(t, err)
	return box, key
}

func TestBox_RoundTrip(t *testing.T) {
	t.Parallel()
	box, _ := newBox(t, secrets.PurposeRecoveryCodes)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"json list", []byte(`["abcdefghjk","mnpqrstuvw"]`)},
		{"binary", []byte{0x00, 0xff, 0x10, 0x80}},
		{"large", bytes.Repeat([]byte("x"), 64*1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ct, err := box.Encrypt(tt.plaintext)
			require.NoError(t, err)
			if len(tt.plaintext) > 0 {
				assert.False(t, bytes.Contains(ct, tt.plaintext))
			}

			pt, err := box.Decrypt(ct)
			require.NoError(t, err)
			assert.Equal(t, len(tt.plaintext), len(pt))
			assert.True(t, bytes.Equal(tt.plaintext, pt))
		})
	}
}

func TestBox_NonceIsRandom(t *testing.T) {
	t.Parallel()
	box, _ := newBox(t, secrets.PurposeRecoveryCodes)

	a, err := box.Encrypt([]byte("same"))
	require.NoError(t, err)
	b, err := box.Encrypt([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBox_TamperedCiphertext(t *testing.T) {
	t.Parallel()
	box, _ := newBox(t, secrets.PurposeRecoveryCodes)

	ct, err := box.Encrypt([]byte("recovery codes"))
	require.NoError(t, err)

	for i := range ct {
		tampered := bytes.Clone(ct)
		tampered[i] ^= 0x01
		pt, err := box.Decrypt(tampered)
		require.ErrorIs(t, err, secrets.ErrDecryptionFailed, "byte %d", i)
		assert.Nil(t, pt)
	}
}

func TestBox_ForeignKeyAndPurpose(t *testing.T) {
	t.Parallel()
	box, key := newBox(t, secrets.PurposeRecoveryCodes)
	other, _ := newBox(t, secrets.PurposeRecoveryCodes)
	samekeyOtherPurpose, err := secrets.NewBox(key, secrets.PurposeOTPSecret)
	require.NoError(t, err)

	ct, err := box.Encrypt([]byte("payload"))
	require.NoError(t, err)

	_, err = other.Decrypt(ct)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)

	_, err = samekeyOtherPurpose.Decrypt(ct)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}

func TestBox_ShortCiphertext(t *testing.T) {
	t.Parallel()
	box, _ := newBox(t, secrets.PurposeRecoveryCodes)

	_, err := box.Decrypt([]byte("short"))
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)

	_, err = box.Decrypt(nil)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}

func TestBox_Strings(t *testing.T) {
	t.Parallel()
	box, _ := newBox(t, secrets.PurposeOTPSecret)

	ct, err := box.EncryptString("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.NotEqual(t, "JBSWY3DPEHPK3PXP", ct)

	pt, err := box.DecryptString(ct)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", pt)

	_, err = box.DecryptString("not base64!@#")
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}

func TestNewBox_InvalidKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  []byte
	}{
		{"nil", nil},
		{"short", make([]byte, 16)},
		{"long", make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			box, err := secrets.NewBox(tt.key, secrets.PurposeRecoveryCodes)
			assert.ErrorIs(t, err, secrets.ErrCryptoUnavailable)
			assert.Nil(t, box)
		})
	}
}

func TestNewBoxFromBase64(t *testing.T) {
	t.Parallel()

	encoded, err := secrets.GenerateEncodedKey()
	require.NoError(t, err)

	box, err := secrets.NewBoxFromBase64(encoded, secrets.PurposeRecoveryCodes)
	require.NoError(t, err)
	require.NotNil(t, box)

	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"empty", "", secrets.ErrEmptyKey},
		{"not base64", "%%%", secrets.ErrCryptoUnavailable},
		{"wrong length", base64.StdEncoding.EncodeToString(make([]byte, 10)), secrets.ErrInvalidKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := secrets.NewBoxFromBase64(tt.encoded, secrets.PurposeRecoveryCodes)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, secrets.ErrCryptoUnavailable)
		})
	}
}

func TestNilBox(t *testing.T) {
	t.Parallel()
	var box *secrets.Box

	_, err := box.Encrypt([]byte("x"))
	assert.ErrorIs(t, err, secrets.ErrCryptoUnavailable)

	_, err = box.Decrypt([]byte("x"))
	assert.ErrorIs(t, err, secrets.ErrCryptoUnavailable)
}
