package vault

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/environment"
)

type mockSecretsManager struct {
	mock.Mock
}

func (m *mockSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, aws.ToString(params.SecretId))
	if out := args.Get(0); out != nil {
		return out.(*secretsmanager.GetSecretValueOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAWSProvider_GetSecret(t *testing.T) {
	t.Parallel()

	t.Run("decodes and caches", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		client := &mockSecretsManager{}
		client.On("GetSecretValue", mock.Anything, "authkit/app").Return(&secretsmanager.GetSecretValueOutput{
			SecretString: aws.String(`{"JWT_SIGNING_KEY":"k1","RECOVERY_ENCRYPTION_KEY":"k2"}`),
		}, nil).Twice()

		p := newAWSProvider(client, WithCacheTTL(time.Minute), withClock(func() time.Time { return now }))

		got, err := p.GetSecret(context.Background(), "authkit/app")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"JWT_SIGNING_KEY": "k1", "RECOVERY_ENCRYPTION_KEY": "k2"}, got)

		got["JWT_SIGNING_KEY"] = "mutated"
		again, err := p.GetSecret(context.Background(), "authkit/app")
		require.NoError(t, err)
		assert.Equal(t, "k1", again["JWT_SIGNING_KEY"], "cache must not be shared with callers")
		client.AssertNumberOfCalls(t, "GetSecretValue", 1)

		now = now.Add(2 * time.Minute)
		_, err = p.GetSecret(context.Background(), "authkit/app")
		require.NoError(t, err)
		client.AssertNumberOfCalls(t, "GetSecretValue", 2)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		client := &mockSecretsManager{}
		client.On("GetSecretValue", mock.Anything, "missing").
			Return(nil, &types.ResourceNotFoundException{Message: aws.String("no such secret")})

		_, err := newAWSProvider(client).GetSecret(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		client := &mockSecretsManager{}
		client.On("GetSecretValue", mock.Anything, "authkit/app").Return(nil, errors.New("connection reset"))

		_, err := newAWSProvider(client).GetSecret(context.Background(), "authkit/app")
		assert.ErrorIs(t, err, ErrProviderFailed)
	})

	t.Run("binary or malformed secrets", func(t *testing.T) {
		t.Parallel()

		client := &mockSecretsManager{}
		client.On("GetSecretValue", mock.Anything, "binary").
			Return(&secretsmanager.GetSecretValueOutput{SecretBinary: []byte{1}}, nil)
		client.On("GetSecretValue", mock.Anything, "plain").
			Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("just-a-string")}, nil)

		p := newAWSProvider(client)
		_, err := p.GetSecret(context.Background(), "binary")
		assert.ErrorIs(t, err, ErrInvalidSecret)
		_, err = p.GetSecret(context.Background(), "plain")
		assert.ErrorIs(t, err, ErrInvalidSecret)
	})

	t.Run("name required", func(t *testing.T) {
		t.Parallel()

		_, err := newAWSProvider(&mockSecretsManager{}).GetSecret(context.Background(), "")
		assert.ErrorIs(t, err, ErrSecretNameRequired)
	})
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	p := NewStaticProvider(map[string]map[string]string{"app": {"A": "1"}})

	got, err := p.GetSecret(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1"}, got)

	_, err = p.GetSecret(context.Background(), "other")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestWithDevelopmentFallback(t *testing.T) {
	t.Parallel()

	empty := NewStaticProvider(nil)

	tests := []struct {
		name    string
		env     environment.Environment
		wantErr bool
	}{
		{"development swallows", environment.Development, false},
		{"staging swallows", environment.Staging, false},
		{"production surfaces", environment.Production, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := WithDevelopmentFallback(empty, tt.env).GetSecret(context.Background(), "app")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSecretNotFound)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NotNil(t, got)
		})
	}
}
