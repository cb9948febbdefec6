package secrets

// Config holds the master key used to build boxes.
// The key is a base64-encoded 32-byte value. It may be left empty here when
// the key comes from the secrets provider instead of the environment.
type Config struct {
	EncryptionKey string `env:"RECOVERY_ENCRYPTION_KEY"`
}
