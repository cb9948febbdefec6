package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers mail through Postmark's transactional API.
// Open and link tracking stay off; these are account security messages.
type PostmarkSender struct {
	client  *postmark.Client
	from    string
	replyTo string
}

// NewPostmarkClient checks cfg and builds a sender. Only the server token is
// needed to send mail.
func NewPostmarkClient(cfg Config) (*PostmarkSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrInvalidConfig)
	}
	for _, addr := range []struct{ name, value string }{
		{"SENDER_EMAIL", cfg.SenderEmail},
		{"SUPPORT_EMAIL", cfg.SupportEmail},
	} {
		if !emailRegex.MatchString(addr.value) {
			return nil, fmt.Errorf("%w: %s must be a valid email address", ErrInvalidConfig, addr.name)
		}
	}

	return &PostmarkSender{
		client:  postmark.NewClient(cfg.PostmarkServerToken, ""),
		from:    cfg.SenderEmail,
		replyTo: cfg.SupportEmail,
	}, nil
}

func (s *PostmarkSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.replyTo,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: false,
		TrackLinks: "None",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode != 0 {
		return fmt.Errorf("%w: postmark code %d: %s", ErrFailedToSendEmail, resp.ErrorCode, resp.Message)
	}
	return nil
}
