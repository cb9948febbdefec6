// Package requestid tags each HTTP request with an id carried in the
// X-Request-ID header and the request context.
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Incoming ids are reused only if they are at most 128 characters of
// [a-zA-Z0-9_-]; anything else is replaced with a new UUID.
package requestid
