package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Test Subject",
		BodyHTML: "<p>Test body</p>",
		Tag:      "test",
	}
	with := func(mut func(*email.SendEmailParams)) email.SendEmailParams {
		p := valid
		mut(&p)
		return p
	}

	tests := []struct {
		name   string
		params email.SendEmailParams
		errMsg string
	}{
		{name: "valid params", params: valid},
		{name: "valid params without tag", params: with(func(p *email.SendEmailParams) { p.Tag = "" })},
		{name: "complex valid email", params: with(func(p *email.SendEmailParams) { p.SendTo = "test.user+tag@sub.example.com" })},
		{name: "empty SendTo", params: with(func(p *email.SendEmailParams) { p.SendTo = "" }), errMsg: "SendTo is required"},
		{name: "whitespace only SendTo", params: with(func(p *email.SendEmailParams) { p.SendTo = "   " }), errMsg: "SendTo is required"},
		{name: "invalid email format", params: with(func(p *email.SendEmailParams) { p.SendTo = "invalid-email" }), errMsg: "SendTo must be a valid email address"},
		{name: "missing domain", params: with(func(p *email.SendEmailParams) { p.SendTo = "user@" }), errMsg: "SendTo must be a valid email address"},
		{name: "missing local part", params: with(func(p *email.SendEmailParams) { p.SendTo = "@example.com" }), errMsg: "SendTo must be a valid email address"},
		{name: "empty Subject", params: with(func(p *email.SendEmailParams) { p.Subject = " " }), errMsg: "Subject is required"},
		{name: "empty BodyHTML", params: with(func(p *email.SendEmailParams) { p.BodyHTML = "" }), errMsg: "BodyHTML is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes html and metadata", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Test Email",
			BodyHTML: "<p>Test content 你好 🌍</p>",
			Tag:      "welcome",
		})
		require.NoError(t, err)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)

		for _, f := range files {
			content, err := os.ReadFile(filepath.Join(dir, f.Name()))
			require.NoError(t, err)
			assert.Contains(t, f.Name(), "welcome")

			switch filepath.Ext(f.Name()) {
			case ".html":
				assert.Equal(t, "<p>Test content 你好 🌍</p>", string(content))
			case ".json":
				var meta map[string]any
				require.NoError(t, json.Unmarshal(content, &meta))
				assert.Equal(t, "user@example.com", meta["send_to"])
				assert.Equal(t, "Test Email", meta["subject"])
				assert.Equal(t, "welcome", meta["tag"])
				assert.NotEmpty(t, meta["timestamp"])
			default:
				t.Fatalf("unexpected file %s", f.Name())
			}
		}
	})

	t.Run("falls back to sanitized subject", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		err := email.NewDevSender(dir).SendEmail(ctx, email.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Password Reset!",
			BodyHTML: "<p>Reset</p>",
		})
		require.NoError(t, err)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)
		for _, f := range files {
			assert.True(t, strings.Contains(f.Name(), "password_reset"), f.Name())
		}
	})

	t.Run("validation error writes nothing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		err := email.NewDevSender(dir).SendEmail(ctx, email.SendEmailParams{Subject: "x", BodyHTML: "y"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		t.Parallel()

		err := email.NewDevSender("/dev/null/cannot-create-here").SendEmail(ctx, email.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Test Email",
			BodyHTML: "<p>Test content</p>",
		})
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "failed to create directory")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := email.NewDevSender(t.TempDir()).SendEmail(cctx, email.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Test Email",
			BodyHTML: "<p>Test content</p>",
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
