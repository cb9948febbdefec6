package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/binder"
	"github.com/dmitrymomot/authkit/pkg/requestid"
)

type codeRequest struct {
	Code string `json:"code"`
}

var errWrongCode = errors.New("wrong code")

func classify(err error) error {
	if errors.Is(err, errWrongCode) {
		return handler.NewHTTPError(http.StatusBadRequest, "invalid_code")
	}
	return err
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var got handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req codeRequest) handler.Response {
		if req.Code == "bad" {
			return handler.Fail(errWrongCode)
		}
		return handler.JSON(map[string]string{"code": req.Code})
	}

	var logs bytes.Buffer
	errorHandler := handler.NewErrorHandler(
		slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		handler.ErrorHandlerConfig{Classify: classify},
	)

	h := handler.Wrap(echo,
		handler.WithBinders[handler.Context, codeRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, codeRequest](errorHandler),
	)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{name: "success", contentType: "application/json", body: `{"code":"123456"}`, wantStatus: http.StatusOK},
		{name: "domain error is classified", contentType: "application/json", body: `{"code":"bad"}`, wantStatus: http.StatusBadRequest, wantCode: "invalid_code"},
		{name: "binder error without classifier mapping", contentType: "text/plain", body: `code`, wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/mfa-validate", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.contentType)

			h(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			got := decode(t, w)
			if tt.wantCode == "" {
				assert.Nil(t, got.Error)
				assert.Equal(t, map[string]any{"code": "123456"}, got.Data)
				return
			}
			require.NotNil(t, got.Error)
			assert.Equal(t, tt.wantCode, got.Error.Code)
		})
	}
}

func TestWrap_Decorators(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) handler.Decorator[handler.Context, codeRequest] {
		return func(next handler.HandlerFunc[handler.Context, codeRequest]) handler.HandlerFunc[handler.Context, codeRequest] {
			return func(ctx handler.Context, req codeRequest) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(
		func(ctx handler.Context, req codeRequest) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		},
		handler.WithDecorators(trace("outer"), trace("inner")),
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, codeRequest) handler.Response { return nil },
		handler.WithErrorHandler[handler.Context, codeRequest](func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, got, handler.ErrNilResponse)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestNewErrorHandler_Logging(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	eh := handler.NewErrorHandler(
		slog.New(slog.NewJSONHandler(&logs, nil)),
		handler.ErrorHandlerConfig{
			Classify: classify,
			Attrs: func(handler.Context) []slog.Attr {
				return []slog.Attr{slog.String("identity", "alice@example.com")}
			},
		},
	)

	r := httptest.NewRequest(http.MethodPost, "/mfa-setup", nil)
	r = r.WithContext(requestid.WithContext(r.Context(), "req-1"))
	w := httptest.NewRecorder()

	eh(handler.NewContext(w, r), errors.New("decrypt: cipher: message authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	got := decode(t, w)
	require.NotNil(t, got.Error)
	assert.Equal(t, handler.GenericErrorMessage, got.Error.Message)
	assert.NotContains(t, w.Body.String(), "cipher")

	out := logs.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"identity":"alice@example.com"`)
	assert.Contains(t, out, "message authentication failed")
}
