package notify

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/email/templates"
)

// EmailNotifier mails the account owner on signup and on security changes
// to MFA. Other events are ignored.
type EmailNotifier struct {
	sender  email.EmailSender
	appName string
}

func NewEmailNotifier(sender email.EmailSender, appName string) *EmailNotifier {
	return &EmailNotifier{sender: sender, appName: appName}
}

func (n *EmailNotifier) Notify(ctx context.Context, event *Event) error {
	if event == nil {
		return ErrNilEvent
	}

	var (
		subject string
		body    templ.Component
	)
	switch event.Type {
	case EventSignup:
		subject = fmt.Sprintf("Welcome to %s", n.appName)
		body = welcomeEmail(n.appName, event.Identity)
	case EventMFADisabled:
		subject = fmt.Sprintf("%s: two-factor authentication was turned off", n.appName)
		body = securityAlertEmail(n.appName, event.Identity,
			"Two-factor authentication was turned off with one of your recovery codes.")
	case EventRecoveryCodesRegenerated:
		subject = fmt.Sprintf("%s: new recovery codes were generated", n.appName)
		body = securityAlertEmail(n.appName, event.Identity,
			"A new set of recovery codes was generated. Your previous codes no longer work.")
	default:
		return nil
	}

	bodyHTML, err := templates.Render(ctx, body)
	if err != nil {
		return fmt.Errorf("render %s email: %w", event.Type, err)
	}

	return n.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   event.Identity,
		Subject:  subject,
		BodyHTML: bodyHTML,
		Tag:      event.Type.String(),
	})
}

func welcomeEmail(appName, identity string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"<h1>Welcome to %s</h1><p>Your account <strong>%s</strong> is ready. "+
				"Open the app and set up two-factor authentication to keep it safe.</p>",
			html.EscapeString(appName), html.EscapeString(identity))
		return err
	})
}

func securityAlertEmail(appName, identity, what string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"<h1>Security notice</h1><p>%s</p><p>Account: <strong>%s</strong>.</p>"+
				"<p>If this was not you, sign in to %s and secure your account now.</p>",
			html.EscapeString(what), html.EscapeString(identity), html.EscapeString(appName))
		return err
	})
}
