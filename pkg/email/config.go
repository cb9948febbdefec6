package email

// Config holds outgoing mail settings. Postmark is used only in production;
// elsewhere messages are written to DevOutputDir.
type Config struct {
	PostmarkServerToken string `env:"POSTMARK_SERVER_TOKEN"`
	SenderEmail         string `env:"SENDER_EMAIL" envDefault:"no-reply@localhost.dev"`
	SupportEmail        string `env:"SUPPORT_EMAIL" envDefault:"support@localhost.dev"`
	DevOutputDir        string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// HasPostmark reports whether a Postmark server token is configured.
func (c Config) HasPostmark() bool {
	return c.PostmarkServerToken != ""
}
