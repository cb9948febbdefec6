package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes each message to dir as <stamp>_<tag>.html plus a .json
// file with the envelope, so local runs can inspect mail without a provider.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates dir on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devEnvelope struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	label := params.Tag
	if label == "" {
		label = params.Subject
	}
	base := filepath.Join(d.dir, now.Format("2006_01_02_150405.000000000")+"_"+fileLabel(label))

	envelope, err := json.MarshalIndent(devEnvelope{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}, "", "  ")
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	for ext, content := range map[string][]byte{
		".html": []byte(params.BodyHTML),
		".json": envelope,
	} {
		if err := os.WriteFile(base+ext, content, 0o600); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrFailedToSendEmail, ext, err)
		}
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9\-_.]`)

// fileLabel reduces s to a short lowercase [a-z0-9-_.] name.
func fileLabel(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " ", "_")
	s = unsafeFileChars.ReplaceAllString(s, "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "email"
	}
	return s
}
