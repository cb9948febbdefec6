package environment

import (
	"context"
	"log/slog"
)

// LoggerExtractor adds env to records logged with a context that carries one.
// logger.WithEnvironment already stamps the process environment, so this is
// only needed by loggers built without it.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		env := FromContext(ctx)
		if env == "" {
			return slog.Attr{}, false
		}
		return slog.String("env", env.String()), true
	}
}
