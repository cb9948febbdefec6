package mfa_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/totp"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

func newCodeStore(t *testing.T) *mfa.RecoveryCodes {
	t.Helper()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	box, err := secrets.NewBox(key, secrets.PurposeRecoveryCodes)
	require.NoError(t, err)
	return mfa.NewRecoveryCodes(box)
}

func TestRecoveryCodes_Generate(t *testing.T) {
	t.Parallel()

	store := newCodeStore(t)
	codes, blob, err := store.Generate(10)
	require.NoError(t, err)
	require.Len(t, codes, 10)
	assert.NotEmpty(t, blob)

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.Len(t, code, totp.DefaultRecoveryCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(totp.RecoveryCodeAlphabet, c), "unexpected character %q", c)
		}
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}

	remaining, err := store.Remaining(blob)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)

	for _, code := range codes {
		assert.NotContains(t, string(blob), code, "codes must not appear in the sealed blob")
	}
}

func TestRecoveryCodes_GenerateInvalidCount(t *testing.T) {
	t.Parallel()

	_, _, err := newCodeStore(t).Generate(0)
	assert.ErrorIs(t, err, totp.ErrInvalidRecoveryCodeCount)
}

func TestRecoveryCodes_Consume(t *testing.T) {
	t.Parallel()

	store := newCodeStore(t)
	codes, blob, err := store.Generate(3)
	require.NoError(t, err)

	t.Run("consumes a listed code exactly once", func(t *testing.T) {
		t.Parallel()

		ok, next, err := store.Consume(blob, codes[1])
		require.NoError(t, err)
		assert.True(t, ok)

		remaining, err := store.Remaining(next)
		require.NoError(t, err)
		assert.Equal(t, 2, remaining)

		ok, again, err := store.Consume(next, codes[1])
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, next, again)

		// Other codes are still usable.
		ok, _, err = store.Consume(next, codes[0])
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown code leaves blob unchanged", func(t *testing.T) {
		t.Parallel()

		ok, next, err := store.Consume(blob, "zzzzzzzzzz")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, blob, next)
	})

	t.Run("codes are case sensitive", func(t *testing.T) {
		t.Parallel()

		flipped := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' {
				return r - 'a' + 'A'
			}
			if r >= 'A' && r <= 'Z' {
				return r - 'A' + 'a'
			}
			return r
		}, codes[2])
		if flipped == codes[2] {
			t.Skip("code has no letters")
		}

		ok, _, err := store.Consume(blob, flipped)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty blob", func(t *testing.T) {
		t.Parallel()

		ok, next, err := store.Consume(nil, codes[0])
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, next)
	})

	t.Run("last code yields nil blob", func(t *testing.T) {
		t.Parallel()

		one, single, err := store.Generate(1)
		require.NoError(t, err)

		ok, next, err := store.Consume(single, one[0])
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, next)
	})
}

func TestRecoveryCodes_CorruptBlob(t *testing.T) {
	t.Parallel()

	store := newCodeStore(t)
	codes, blob, err := store.Generate(2)
	require.NoError(t, err)

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0xff

	_, _, err = store.Consume(tampered, codes[0])
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)

	_, err = store.Remaining(tampered)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)

	// A blob sealed under another key is just as unreadable.
	_, foreign, err := newCodeStore(t).Generate(2)
	require.NoError(t, err)
	_, err = store.Remaining(foreign)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}
