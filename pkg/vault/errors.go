package vault

import "errors"

var (
	ErrSecretNameRequired = errors.New("vault: secret name is required")
	ErrSecretNotFound     = errors.New("vault: secret not found")
	ErrInvalidSecret      = errors.New("vault: secret is not a JSON object of strings")
	ErrProviderFailed     = errors.New("vault: provider request failed")
)
