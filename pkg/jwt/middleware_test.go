package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/jwt"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()
	svc, err := jwt.New(testKey)
	require.NoError(t, err)

	token, err := svc.Generate(testClaims{StandardClaims: svc.NewClaims("a@example.com"), Verified: true})
	require.NoError(t, err)

	var seen *testClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := jwt.GetClaims[*testClaims](r.Context())
		require.True(t, ok)
		seen = c
		tok, ok := jwt.GetToken(r.Context())
		assert.True(t, ok)
		assert.Equal(t, token, tok)
		w.WriteHeader(http.StatusNoContent)
	})
	h := jwt.Middleware[testClaims](svc, jwt.MiddlewareConfig{})(next)

	t.Run("valid bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "a@example.com", seen.Subject)
		assert.True(t, seen.Verified)
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"bad token":      "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMiddlewareCustomErrorHandlerAndCookie(t *testing.T) {
	t.Parallel()
	svc, err := jwt.New(testKey)
	require.NoError(t, err)
	token, err := svc.Generate(testClaims{StandardClaims: svc.NewClaims("a@example.com")})
	require.NoError(t, err)

	var gotErr error
	h := jwt.Middleware[testClaims](svc, jwt.MiddlewareConfig{
		Extractor: jwt.CookieTokenExtractor("session"),
		ErrorHandler: func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusTeapot)
		},
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, gotErr, jwt.ErrInvalidToken)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerTokenExtractor(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc")
	tok, err := jwt.BearerTokenExtractor(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}
