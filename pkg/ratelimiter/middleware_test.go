package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/clientip"
	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	bucket, _ := newBucket(t, newClock())
	h := ratelimiter.Middleware(bucket, ratelimiter.Composite(ratelimiter.ByRoute, ratelimiter.ByIP))(okHandler())

	for i := range testConfig.Capacity {
		rec := serve(h, http.MethodPost, "/login", "192.0.2.1:1000")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(testConfig.Capacity-i-1), rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	}

	rec := serve(h, http.MethodPost, "/login", "192.0.2.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// separate buckets per route and per address
	assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/signup", "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/login", "192.0.2.2:1000").Code)
}

func TestMiddleware_EmptyKeyPassesThrough(t *testing.T) {
	t.Parallel()

	bucket, _ := newBucket(t, newClock())
	h := ratelimiter.Middleware(bucket, func(*http.Request) string { return "" })(okHandler())

	for range testConfig.Capacity + 2 {
		rec := serve(h, http.MethodGet, "/", "192.0.2.1:1000")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

type failingLimiter struct{ err error }

func (f failingLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, f.err
}

func TestMiddleware_ErrorHandler(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")

	var got []error
	onError := ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		got = append(got, err)
		w.WriteHeader(http.StatusTeapot)
	})

	h := ratelimiter.Middleware(failingLimiter{err: storeErr}, ratelimiter.ByIP, onError)(okHandler())
	assert.Equal(t, http.StatusTeapot, serve(h, http.MethodGet, "/", "192.0.2.1:1").Code)

	bucket, _ := newBucket(t, newClock())
	h = ratelimiter.Middleware(bucket, ratelimiter.ByIP, onError)(okHandler())
	for range testConfig.Capacity + 1 {
		serve(h, http.MethodGet, "/", "192.0.2.1:1")
	}

	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0], storeErr)
	assert.ErrorIs(t, got[1], ratelimiter.ErrLimitExceeded)
}

func TestMiddleware_DefaultErrorResponses(t *testing.T) {
	t.Parallel()

	h := ratelimiter.Middleware(failingLimiter{err: ratelimiter.ErrStoreUnavailable}, ratelimiter.ByIP)(okHandler())
	assert.Equal(t, http.StatusInternalServerError, serve(h, http.MethodGet, "/", "192.0.2.1:1").Code)
}

func TestByIP_UsesContextAddress(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1"
	assert.Equal(t, "10.0.0.1", ratelimiter.ByIP(req))

	req = req.WithContext(clientip.WithContext(req.Context(), "203.0.113.7"))
	assert.Equal(t, "203.0.113.7", ratelimiter.ByIP(req))
}

func TestComposite(t *testing.T) {
	t.Parallel()

	static := func(s string) ratelimiter.KeyFunc {
		return func(*http.Request) string { return s }
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	tests := []struct {
		name  string
		funcs []ratelimiter.KeyFunc
		check func(t *testing.T, key string)
	}{
		{
			name:  "joins non-empty parts",
			funcs: []ratelimiter.KeyFunc{static("a"), static(""), static("b")},
			check: func(t *testing.T, key string) { assert.Equal(t, "a:b", key) },
		},
		{
			name:  "all empty",
			funcs: []ratelimiter.KeyFunc{static(""), static("")},
			check: func(t *testing.T, key string) { assert.Empty(t, key) },
		},
		{
			name:  "long keys are hashed",
			funcs: []ratelimiter.KeyFunc{static(strings.Repeat("x", 80))},
			check: func(t *testing.T, key string) {
				assert.NotEmpty(t, key)
				assert.LessOrEqual(t, len(key), 13)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, ratelimiter.Composite(tt.funcs...)(req))
		})
	}
}
