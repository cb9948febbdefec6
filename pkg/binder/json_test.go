package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/binder"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func newRequest(method, contentType, body string) *http.Request {
	req := httptest.NewRequest(method, "/login", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		req := newRequest(http.MethodPost, "application/json", `{"email":"alice@example.com","password":"pw123456"}`)

		var got credentials
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, credentials{Email: "alice@example.com", Password: "pw123456"}, got)
	})

	t.Run("content type with charset", func(t *testing.T) {
		t.Parallel()
		req := newRequest(http.MethodPost, "application/json; charset=utf-8", `{"email":"a@b.co"}`)

		var got credentials
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, "a@b.co", got.Email)
	})

	t.Run("control characters are stripped", func(t *testing.T) {
		t.Parallel()
		req := newRequest(http.MethodPost, "application/json", `{"email":"alice@example.com\u0000\n"}`)

		var got credentials
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("get is not applicable", func(t *testing.T) {
		t.Parallel()
		req := newRequest(http.MethodGet, "", "")

		var got credentials
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrBinderNotApplicable)
	})
}

func TestJSON_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		opts        []binder.JSONOption
		wantErr     error
	}{
		{name: "missing content type", body: `{}`, wantErr: binder.ErrMissingContentType},
		{name: "form content type", contentType: "application/x-www-form-urlencoded", body: "email=a", wantErr: binder.ErrUnsupportedMediaType},
		{name: "malformed content type", contentType: "application/", body: `{}`, wantErr: binder.ErrUnsupportedMediaType},
		{name: "empty body", contentType: "application/json", wantErr: binder.ErrFailedToParseJSON},
		{name: "invalid json", contentType: "application/json", body: `{"email":`, wantErr: binder.ErrFailedToParseJSON},
		{name: "unknown field", contentType: "application/json", body: `{"email":"a","admin":true}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "wrong type", contentType: "application/json", body: `{"email":42}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "trailing data", contentType: "application/json", body: `{"email":"a"}{"email":"b"}`, wantErr: binder.ErrFailedToParseJSON},
		{
			name:        "too large",
			contentType: "application/json",
			body:        `{"email":"` + strings.Repeat("a", 64) + `"}`,
			opts:        []binder.JSONOption{binder.WithMaxSize(32)},
			wantErr:     binder.ErrRequestTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := newRequest(http.MethodPost, tt.contentType, tt.body)

			var got credentials
			err := binder.JSON(tt.opts...)(req, &got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
