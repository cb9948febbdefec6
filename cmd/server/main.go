// Command server runs the authkit JSON API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"time"

	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/clientip"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/environment"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/requestid"
	"github.com/dmitrymomot/authkit/pkg/secrets"
	accounts "github.com/dmitrymomot/authkit/svc/account"
	"github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
	"github.com/dmitrymomot/authkit/svc/notify"
)

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`
	Name          string        `env:"APP_NAME" envDefault:"authkit"`
	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"memory"` // memory|postgres|mongo
	Notifier      string        `env:"NOTIFIER" envDefault:"log"`          // log|email|sns
	SNSTopicARN   string        `env:"SNS_TOPIC_ARN"`
	SecretsSource string        `env:"SECRETS_SOURCE" envDefault:"env"`      // env|aws
	RateLimit     string        `env:"RATE_LIMIT_STORE" envDefault:"memory"` // memory|redis|off
	AWSRegion     string        `env:"AWS_REGION"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"12"`
	HealthTimeout time.Duration `env:"HEALTHCHECK_TIMEOUT" envDefault:"2s"`

	// Empty means RemoteAddr only; set it to the headers your proxy writes.
	ClientIPHeaders []string `env:"CLIENT_IP_HEADERS" envDefault:"X-Forwarded-For,X-Real-IP" envSeparator:","`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "authkit: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	env := environment.Parse(cfg.Env)
	ctx = environment.WithContext(ctx, env)

	log := logger.New(
		logger.WithEnvironment(env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var (
		secretsCfg secrets.Config
		jwtCfg     jwt.Config
		mfaCfg     mfa.Config
		httpCfg    httpserver.Config
	)
	if err := config.Load(&secretsCfg); err != nil {
		return err
	}
	if err := config.Load(&jwtCfg); err != nil {
		return err
	}
	if err := config.Load(&mfaCfg); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	awsCfg := newAWSLoader(cfg.AWSRegion)

	if cfg.SecretsSource == "aws" {
		if err := loadVaultSecrets(ctx, awsCfg, env, &secretsCfg, &jwtCfg, log); err != nil {
			return err
		}
	}

	secretBox, err := secrets.NewBoxFromBase64(secretsCfg.EncryptionKey, secrets.PurposeOTPSecret)
	if err != nil {
		return fmt.Errorf("otp secret box: %w", err)
	}
	codeBox, err := secrets.NewBoxFromBase64(secretsCfg.EncryptionKey, secrets.PurposeRecoveryCodes)
	if err != nil {
		return fmt.Errorf("recovery code box: %w", err)
	}

	tokens, err := jwt.NewFromConfig(jwtCfg)
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	store, err := openStorage(ctx, cfg.StorageDriver, log)
	if err != nil {
		return err
	}
	defer store.shutdown()

	limits, err := openLimiter(ctx, cfg.RateLimit, log)
	if err != nil {
		return err
	}
	checks := maps.Clone(store.checks)
	if limits != nil {
		defer limits.shutdown()
		maps.Copy(checks, limits.checks)
	}

	notifier, err := newNotifier(ctx, cfg, env, awsCfg, log)
	if err != nil {
		return err
	}
	dispatcher := notify.NewDispatcher(notifier, notify.WithDispatchLogger(log))
	defer dispatcher.Wait()

	// auth seeds MFA fields on signup and mfa re-checks passwords through
	// auth, so the initializer resolves mfaSvc at call time.
	var mfaSvc *mfa.Service
	authSvc := auth.NewService(store.repo, tokens,
		auth.WithHasher(auth.NewBcryptHasher(cfg.BcryptCost)),
		auth.WithAccountInitializer(func(ctx context.Context, a *accounts.Account) error {
			return mfaSvc.PrepareAccount(ctx, a)
		}),
		auth.WithDispatcher(dispatcher),
		auth.WithLogger(log),
	)
	mfaSvc, err = mfa.NewService(store.repo, secretBox, mfa.NewRecoveryCodes(codeBox), authSvc,
		mfa.WithConfig(mfaCfg),
		mfa.WithDispatcher(dispatcher),
		mfa.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("mfa: %w", err)
	}

	errorHandler := account.NewErrorHandler(log)
	ips := clientip.NewResolver(clientip.WithTrustedHeaders(cfg.ClientIPHeaders...))
	routerOpts := account.RouterOptions{
		Password: account.NewPasswordService(authSvc, errorHandler),
		MFA:      account.NewMFAService(mfaSvc, tokens, errorHandler),
		Health:   httpserver.HealthCheckHandler(log, cfg.HealthTimeout, checks),
		Middlewares: []func(http.Handler) http.Handler{
			requestid.Middleware,
			ips.Middleware,
			environment.Middleware(env),
		},
	}
	if limits != nil {
		routerOpts.RateLimit = account.RateLimit(limits.bucket, errorHandler)
	}
	router := account.Router(routerOpts)

	server := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(_ context.Context, l *slog.Logger) {
			l.Info("storage ready",
				slog.String("driver", store.driver),
				slog.String("notifier", cfg.Notifier),
				slog.String("rate_limit", cfg.RateLimit),
			)
		}),
	)
	return server.Run(ctx, router)
}
