// Package logger builds log/slog loggers with environment-aware defaults,
// context extractors, and typed attribute helpers.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "authkit"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "mfa verified", logger.Identity(email), logger.Component("mfa"))
//
// Attribute helpers return an empty slog.Attr for nil or empty inputs, which
// slog drops, so call sites need no nil checks.
package logger
