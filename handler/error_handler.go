package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/requestid"
)

// Classifier translates domain errors into HTTPError values. Errors it returns
// unchanged are rendered as 500.
type Classifier func(err error) error

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	Classify Classifier

	// Attrs adds request-scoped log attributes, e.g. the caller's identity.
	Attrs func(ctx Context) []slog.Attr
}

// NewErrorHandler renders errors as JSON envelopes. Server errors are logged
// at error level with the original error; client errors at debug level.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		mapped := err
		if cfg.Classify != nil {
			mapped = cfg.Classify(err)
		}

		status := http.StatusInternalServerError
		detail := errorToDetail(mapped, &status)

		level := slog.LevelDebug
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		r := ctx.Request()
		attrs := []slog.Attr{
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		}
		if cfg.Attrs != nil {
			attrs = append(attrs, cfg.Attrs(ctx)...)
		}
		log.LogAttrs(r.Context(), level, "request error", attrs...)

		resp := jsonResponse{status: status, body: JSONResponse{Error: detail}}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.RequestID(requestid.FromContext(r.Context())),
				logger.Error(renderErr),
			)
		}
	}
}
