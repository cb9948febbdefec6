package totp

import "errors"

var (
	ErrFailedToGenerateSecretKey    = errors.New("failed to generate TOTP secret key")
	ErrFailedToGenerateTOTP         = errors.New("failed to generate TOTP")
	ErrMissingSecret                = errors.New("missing secret")
	ErrInvalidSecret                = errors.New("invalid secret")
	ErrMissingAccountName           = errors.New("missing account name")
	ErrMissingIssuer                = errors.New("missing issuer")
	ErrInvalidOTP                   = errors.New("invalid OTP format")
	ErrUnsupportedAlgorithm         = errors.New("unsupported HMAC algorithm")
	ErrInvalidRecoveryCodeCount     = errors.New("invalid recovery code count, must be greater than 0")
	ErrInvalidRecoveryCodeLength    = errors.New("invalid recovery code length, must be greater than 0")
	ErrFailedToGenerateRecoveryCode = errors.New("failed to generate recovery code")
)
