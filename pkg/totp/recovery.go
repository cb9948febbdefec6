package totp

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// RecoveryCodeAlphabet excludes look-alike characters (0/O, 1/l/I) so codes
// can be typed from a printout.
const RecoveryCodeAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultRecoveryCodeLength is the length of each generated recovery code.
const DefaultRecoveryCodeLength = 10

// GenerateRecoveryCodes creates count unique single-use backup codes of the
// given length drawn from RecoveryCodeAlphabet with crypto/rand.
func GenerateRecoveryCodes(count, length int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidRecoveryCodeCount
	}
	if length < 1 {
		return nil, ErrInvalidRecoveryCodeLength
	}

	codes := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for len(codes) < count {
		code, err := randomCode(length)
		if err != nil {
			return nil, errors.Join(ErrFailedToGenerateRecoveryCode, err)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

func randomCode(length int) (string, error) {
	max := big.NewInt(int64(len(RecoveryCodeAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = RecoveryCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
