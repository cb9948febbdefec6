package mfa

import (
	"errors"

	"github.com/dmitrymomot/authkit/pkg/validator"
	"github.com/dmitrymomot/authkit/svc/account"
)

var (
	ErrInvalidCode         = errors.New("mfa: invalid verification code")
	ErrInvalidRecoveryCode = errors.New("mfa: invalid recovery code")
	ErrAlreadyVerified     = errors.New("mfa: already verified")
	ErrAlreadyActivated    = errors.New("mfa: already activated")
	ErrNotActivated        = errors.New("mfa: not activated")
	ErrNotVerified         = errors.New("mfa: not verified")
	ErrInvalidPassword     = errors.New("mfa: invalid password")
)

var domainErrors = []error{
	ErrInvalidCode,
	ErrInvalidRecoveryCode,
	ErrAlreadyVerified,
	ErrAlreadyActivated,
	ErrNotActivated,
	ErrNotVerified,
	ErrInvalidPassword,
	account.ErrNotFound,
}

// IsFault reports whether err is a system failure (crypto, storage, encoding)
// rather than a rejected request. Callers should log faults and hide details.
func IsFault(err error) bool {
	if err == nil || validator.IsValidationError(err) {
		return false
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return false
		}
	}
	return true
}
