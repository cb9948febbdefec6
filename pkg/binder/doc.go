// Package binder decodes HTTP request bodies into typed request structs for
// handler.Wrap.
//
//	type validateRequest struct {
//		Code string `json:"code"`
//	}
//
//	r.Post("/mfa-validate", handler.Wrap(s.validate,
//		handler.WithBinders[handler.Context, validateRequest](binder.JSON()),
//	))
//
// The JSON binder is strict: it requires an application/json content type,
// rejects unknown fields and trailing data, limits the body size
// (DefaultMaxJSONSize, override with WithMaxSize) and strips control characters
// from decoded strings. Failures wrap ErrMissingContentType,
// ErrUnsupportedMediaType, ErrRequestTooLarge or ErrFailedToParseJSON so
// callers can map them to HTTP statuses with errors.Is.
package binder
