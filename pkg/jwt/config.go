package jwt

import "time"

// Config holds token settings, loaded from JWT_* variables.
type Config struct {
	SigningKey string        `env:"JWT_SIGNING_KEY"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"authkit"`
	TTL        time.Duration `env:"JWT_TTL" envDefault:"15m"`
}
