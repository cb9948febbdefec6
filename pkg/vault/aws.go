package vault

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

// DefaultCacheTTL is how long a fetched secret is reused.
const DefaultCacheTTL = time.Hour

type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type cachedSecret struct {
	values    map[string]string
	expiresAt time.Time
}

// AWSProvider reads JSON secrets from AWS Secrets Manager and caches them
// in-process for a TTL.
type AWSProvider struct {
	client secretsManagerAPI
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedSecret
}

type AWSOption func(*AWSProvider)

func WithCacheTTL(ttl time.Duration) AWSOption {
	return func(p *AWSProvider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

func withClock(now func() time.Time) AWSOption {
	return func(p *AWSProvider) { p.now = now }
}

func NewAWSProvider(cfg aws.Config, opts ...AWSOption) *AWSProvider {
	return newAWSProvider(secretsmanager.NewFromConfig(cfg), opts...)
}

func newAWSProvider(client secretsManagerAPI, opts ...AWSOption) *AWSProvider {
	p := &AWSProvider{
		client: client,
		ttl:    DefaultCacheTTL,
		now:    time.Now,
		cache:  make(map[string]cachedSecret),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *AWSProvider) GetSecret(ctx context.Context, name string) (map[string]string, error) {
	if name == "" {
		return nil, ErrSecretNameRequired
	}

	p.mu.RLock()
	cached, ok := p.cache[name]
	p.mu.RUnlock()
	if ok && p.now().Before(cached.expiresAt) {
		return maps.Clone(cached.values), nil
	}

	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
			return nil, errors.Join(ErrSecretNotFound, err)
		}
		return nil, errors.Join(ErrProviderFailed, err)
	}
	if out.SecretString == nil {
		return nil, ErrInvalidSecret
	}

	values := make(map[string]string)
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}

	p.mu.Lock()
	p.cache[name] = cachedSecret{values: values, expiresAt: p.now().Add(p.ttl)}
	p.mu.Unlock()

	return maps.Clone(values), nil
}
