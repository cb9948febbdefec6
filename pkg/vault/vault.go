package vault

import (
	"context"
	"errors"
	"maps"

	"github.com/dmitrymomot/authkit/pkg/environment"
)

// Provider returns a named secret as a flat key/value map.
type Provider interface {
	GetSecret(ctx context.Context, name string) (map[string]string, error)
}

// StaticProvider serves secrets from memory. Useful for tests and local runs.
type StaticProvider struct {
	secrets map[string]map[string]string
}

func NewStaticProvider(secrets map[string]map[string]string) *StaticProvider {
	return &StaticProvider{secrets: secrets}
}

func (p *StaticProvider) GetSecret(_ context.Context, name string) (map[string]string, error) {
	if name == "" {
		return nil, ErrSecretNameRequired
	}
	values, ok := p.secrets[name]
	if !ok {
		return nil, ErrSecretNotFound
	}
	return maps.Clone(values), nil
}

// fallbackProvider swallows lookup failures outside production.
type fallbackProvider struct {
	next Provider
	env  environment.Environment
}

// WithDevelopmentFallback wraps next so that, outside production, a failed
// lookup yields an empty map instead of an error. Production keeps the error.
func WithDevelopmentFallback(next Provider, env environment.Environment) Provider {
	return &fallbackProvider{next: next, env: env}
}

func (p *fallbackProvider) GetSecret(ctx context.Context, name string) (map[string]string, error) {
	values, err := p.next.GetSecret(ctx, name)
	if err == nil {
		return values, nil
	}
	if p.env.IsProduction() || errors.Is(err, ErrSecretNameRequired) {
		return nil, err
	}
	return map[string]string{}, nil
}
