package templates_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/email/templates"
)

func TestRender(t *testing.T) {
	t.Parallel()

	greeting := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString("<b>hi</b>")+"</p>")
		return err
	})

	out, err := templates.Render(context.Background(), greeting)
	require.NoError(t, err)
	assert.Equal(t, "<p>&lt;b&gt;hi&lt;/b&gt;</p>", out)
}

func TestRenderError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	_, err := templates.Render(context.Background(), templ.ComponentFunc(func(context.Context, io.Writer) error {
		return boom
	}))
	assert.ErrorIs(t, err, boom)
}
