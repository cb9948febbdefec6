package account

import (
	"net/http"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
)

// RateLimit limits attempts per route and client address. Rejections and
// store failures render through errorHandler like any other route error.
func RateLimit(limiter ratelimiter.Limiter, errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return ratelimiter.Middleware(limiter,
		ratelimiter.Composite(ratelimiter.ByRoute, ratelimiter.ByIP),
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			errorHandler(handler.NewContext(w, r), err)
		}),
	)
}
