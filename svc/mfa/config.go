package mfa

import "github.com/dmitrymomot/authkit/pkg/qrcode"

// Config holds MFA settings loaded from the environment.
type Config struct {
	Issuer             string `env:"MFA_ISSUER" envDefault:"authkit"`
	RecoveryCodeCount  int    `env:"MFA_RECOVERY_CODE_COUNT" envDefault:"10"`
	Skew               int    `env:"MFA_SKEW" envDefault:"1"`
	ActivatedByDefault bool   `env:"MFA_ACTIVATED_BY_DEFAULT" envDefault:"true"`
	QRCodeSize         int    `env:"MFA_QR_SIZE" envDefault:"256"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		Issuer:             "authkit",
		RecoveryCodeCount:  10,
		Skew:               1,
		ActivatedByDefault: true,
		QRCodeSize:         qrcode.DefaultSize,
	}
}
