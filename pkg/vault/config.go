package vault

import "time"

// Config selects the secret to read from AWS Secrets Manager.
type Config struct {
	SecretName string        `env:"SECRETS_NAME" envDefault:"authkit/app"`
	CacheTTL   time.Duration `env:"SECRETS_CACHE_TTL" envDefault:"1h"`
}
