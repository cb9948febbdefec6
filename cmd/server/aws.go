package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/environment"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/vault"
)

// Keys read from the Secrets Manager JSON secret.
const (
	vaultKeyEncryption = "RECOVERY_ENCRYPTION_KEY"
	vaultKeyJWT        = "JWT_SIGNING_KEY"
)

// awsLoader loads the default AWS config on first use, so deployments that
// use neither SNS nor Secrets Manager never touch AWS credentials.
type awsLoader struct {
	region string
	once   sync.Once
	cfg    aws.Config
	err    error
}

func newAWSLoader(region string) *awsLoader {
	return &awsLoader{region: region}
}

func (l *awsLoader) Load(ctx context.Context) (aws.Config, error) {
	l.once.Do(func() {
		var opts []func(*awsconfig.LoadOptions) error
		if l.region != "" {
			opts = append(opts, awsconfig.WithRegion(l.region))
		}
		l.cfg, l.err = awsconfig.LoadDefaultConfig(ctx, opts...)
		if l.err != nil {
			l.err = fmt.Errorf("failed to load AWS config: %w", l.err)
		}
	})
	return l.cfg, l.err
}

// loadVaultSecrets overrides the encryption and signing keys with values from
// Secrets Manager. Outside production a missing secret leaves the env values.
func loadVaultSecrets(ctx context.Context, loader *awsLoader, env environment.Environment, sc *secrets.Config, jc *jwt.Config, log *slog.Logger) error {
	var vc vault.Config
	if err := config.Load(&vc); err != nil {
		return err
	}

	awsCfg, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	provider := vault.WithDevelopmentFallback(
		vault.NewAWSProvider(awsCfg, vault.WithCacheTTL(vc.CacheTTL)),
		env,
	)
	values, err := provider.GetSecret(ctx, vc.SecretName)
	if err != nil {
		return fmt.Errorf("load secret %q: %w", vc.SecretName, err)
	}

	if v := values[vaultKeyEncryption]; v != "" {
		sc.EncryptionKey = v
	}
	if v := values[vaultKeyJWT]; v != "" {
		jc.SigningKey = v
	}

	log.Info("secrets loaded",
		logger.Component("vault"),
		slog.String("secret", vc.SecretName),
		slog.Int("keys", len(values)),
	)
	return nil
}
