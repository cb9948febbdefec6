// Package email sends transactional email through a provider-agnostic
// EmailSender. Two implementations ship with it: a Postmark client for
// production and DevSender, which writes each message to disk as an HTML file
// plus JSON metadata.
//
//	var sender email.EmailSender = email.NewDevSender(cfg.DevOutputDir)
//	if cfg.HasPostmark() {
//	    pm, err := email.NewPostmarkClient(cfg)
//	    if err != nil {
//	        return err
//	    }
//	    sender = pm
//	}
//
//	body, err := templates.Render(ctx, welcome)
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "alice@example.com",
//	    Subject:  "Welcome",
//	    BodyHTML: body,
//	    Tag:      "signup",
//	})
//
// Parameters are validated before any provider call; failures wrap
// ErrInvalidParams. Provider failures wrap ErrFailedToSendEmail.
package email
