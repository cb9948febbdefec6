package account

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/binder"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
	"github.com/dmitrymomot/authkit/pkg/validator"
	accounts "github.com/dmitrymomot/authkit/svc/account"
	"github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

var (
	errInvalidCredentials = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	errUnauthorized       = handler.ErrUnauthorized
	errInvalidRequest     = handler.NewHTTPError(http.StatusBadRequest, "invalid_request")
	errRequestTooLarge    = handler.NewHTTPError(http.StatusRequestEntityTooLarge, "request_too_large")
)

// statusErrors maps domain sentinels to HTTP errors. Order matters only for
// errors joined from several sentinels; the first match wins.
var statusErrors = []struct {
	target error
	mapped handler.HTTPError
}{
	{auth.ErrInvalidCredentials, errInvalidCredentials},
	{auth.ErrUnauthorized, errUnauthorized},
	{jwt.ErrInvalidToken, errUnauthorized},
	{jwt.ErrExpiredToken, errUnauthorized},
	{accounts.ErrNotFound, errUnauthorized},
	{auth.ErrEmailAlreadyExists, handler.NewHTTPError(http.StatusBadRequest, "email_already_exists")},
	{mfa.ErrInvalidCode, handler.NewHTTPError(http.StatusBadRequest, "invalid_code")},
	{mfa.ErrInvalidRecoveryCode, handler.NewHTTPError(http.StatusBadRequest, "invalid_recovery_code")},
	{mfa.ErrAlreadyVerified, handler.NewHTTPError(http.StatusBadRequest, "already_verified")},
	{mfa.ErrAlreadyActivated, handler.NewHTTPError(http.StatusBadRequest, "already_activated")},
	{mfa.ErrNotActivated, handler.NewHTTPError(http.StatusBadRequest, "not_activated")},
	{mfa.ErrNotVerified, handler.NewHTTPError(http.StatusBadRequest, "not_verified")},
	{mfa.ErrInvalidPassword, handler.NewHTTPError(http.StatusBadRequest, "invalid_password")},
	{binder.ErrMissingContentType, handler.ErrUnsupportedMediaType},
	{binder.ErrUnsupportedMediaType, handler.ErrUnsupportedMediaType},
	{binder.ErrRequestTooLarge, errRequestTooLarge},
	{binder.ErrFailedToParseJSON, errInvalidRequest},
	{ratelimiter.ErrLimitExceeded, handler.NewHTTPError(http.StatusTooManyRequests, "too_many_requests")},
}

// ClassifyError maps service errors to HTTP errors. Validation errors pass
// through for the 422 envelope; anything unknown stays as is and renders as a
// generic 500.
func ClassifyError(err error) error {
	if validator.IsValidationError(err) {
		return err
	}
	for _, se := range statusErrors {
		if errors.Is(err, se.target) {
			return se.mapped
		}
	}
	return err
}

// NewErrorHandler returns the error handler shared by every account route.
func NewErrorHandler(log *slog.Logger) handler.ErrorHandler[handler.Context] {
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		Classify: ClassifyError,
		Attrs: func(ctx handler.Context) []slog.Attr {
			return []slog.Attr{logger.Identity(identityFrom(ctx))}
		},
	})
}
