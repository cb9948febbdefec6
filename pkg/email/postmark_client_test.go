package email_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/email"
)

func validPostmarkConfig() email.Config {
	return email.Config{
		PostmarkServerToken: "test-server-token",
		SenderEmail:         "sender@example.com",
		SupportEmail:        "support@example.com",
	}
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mut    func(*email.Config)
		errMsg string
	}{
		{name: "valid config", mut: func(*email.Config) {}},
		{name: "empty server token", mut: func(c *email.Config) { c.PostmarkServerToken = "" }, errMsg: "POSTMARK_SERVER_TOKEN is required"},
		{name: "missing sender", mut: func(c *email.Config) { c.SenderEmail = "" }, errMsg: "SENDER_EMAIL"},
		{name: "invalid sender", mut: func(c *email.Config) { c.SenderEmail = "invalid-email" }, errMsg: "SENDER_EMAIL"},
		{name: "missing support", mut: func(c *email.Config) { c.SupportEmail = "" }, errMsg: "SUPPORT_EMAIL"},
		{name: "invalid support", mut: func(c *email.Config) { c.SupportEmail = "@invalid.com" }, errMsg: "SUPPORT_EMAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validPostmarkConfig()
			tt.mut(&cfg)

			client, err := email.NewPostmarkClient(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)
				return
			}
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPostmarkSender_ValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	client, err := email.NewPostmarkClient(validPostmarkConfig())
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "invalid-email",
		Subject:  "Test Email",
		BodyHTML: "<p>Test content</p>",
	})
	assert.ErrorIs(t, err, email.ErrInvalidParams)
	assert.Contains(t, err.Error(), "SendTo must be a valid email address")
}

func TestConfigHasPostmark(t *testing.T) {
	t.Parallel()
	assert.True(t, validPostmarkConfig().HasPostmark())
	assert.False(t, email.Config{SenderEmail: "a@example.com"}.HasPostmark())
}
