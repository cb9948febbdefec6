package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/environment"
	"github.com/dmitrymomot/authkit/svc/notify"
)

// newNotifier always logs events; NOTIFIER selects one more delivery channel.
// E-mail goes through Postmark when a token is set and is mandatory in
// production; otherwise messages are written to EMAIL_DEV_DIR.
func newNotifier(ctx context.Context, cfg appConfig, env environment.Environment, loader *awsLoader, log *slog.Logger) (notify.Notifier, error) {
	logNotifier := notify.NewLogNotifier(log)

	switch cfg.Notifier {
	case "", "log":
		return logNotifier, nil

	case "email":
		var ec email.Config
		if err := config.Load(&ec); err != nil {
			return nil, err
		}
		var sender email.EmailSender = email.NewDevSender(ec.DevOutputDir)
		if env.IsProduction() || ec.HasPostmark() {
			pm, err := email.NewPostmarkClient(ec)
			if err != nil {
				return nil, err
			}
			sender = pm
		}
		return notify.NewMultiNotifier(logNotifier, notify.NewEmailNotifier(sender, cfg.Name)), nil

	case "sns":
		if cfg.SNSTopicARN == "" {
			return nil, errors.New("NOTIFIER=sns requires SNS_TOPIC_ARN")
		}
		awsCfg, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		return notify.NewMultiNotifier(logNotifier, notify.NewSNSNotifier(awsCfg, cfg.SNSTopicARN)), nil

	default:
		return nil, fmt.Errorf("unknown NOTIFIER %q (want log, email or sns)", cfg.Notifier)
	}
}
