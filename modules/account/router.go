package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routable registers its routes on a router.
type Routable interface {
	Routes(r chi.Router)
}

// RouterOptions configures which services to mount in the account module.
// Each service is optional and is only mounted if provided.
type RouterOptions struct {
	Password Routable
	MFA      Routable

	// Health serves GET /healthz.
	Health http.Handler

	// Middlewares run for every route, e.g. request id propagation.
	Middlewares []func(http.Handler) http.Handler

	// RateLimit guards the password and MFA routes but not /healthz.
	RateLimit func(http.Handler) http.Handler
}

// Router creates the account API router.
//
//	r := account.Router(account.RouterOptions{
//		Password:    account.NewPasswordService(authSvc, errorHandler),
//		MFA:         account.NewMFAService(mfaSvc, tokens, errorHandler),
//		Health:      httpserver.HealthCheckHandler(log, time.Second, checks),
//		Middlewares: []func(http.Handler) http.Handler{requestid.Middleware},
//		RateLimit:   account.RateLimit(bucket, errorHandler),
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(opts.Middlewares...)

	if opts.Health != nil {
		r.Method(http.MethodGet, "/healthz", opts.Health)
	}

	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}
		if opts.Password != nil {
			opts.Password.Routes(r)
		}
		if opts.MFA != nil {
			opts.MFA.Routes(r)
		}
	})

	return r
}
