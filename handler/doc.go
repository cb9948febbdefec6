// Package handler provides type-safe JSON HTTP handlers.
//
// A HandlerFunc receives a request value already bound by one or more Bind
// functions and returns a Response. Wrap turns it into an http.HandlerFunc:
//
//	type loginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	func (s *PasswordService) login(ctx handler.Context, req loginRequest) handler.Response {
//		session, err := s.auth.Login(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(session)
//	}
//
//	r.Post("/login", handler.Wrap(s.login,
//		handler.WithBinders[handler.Context, loginRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, loginRequest](errorHandler),
//	))
//
// # Responses
//
// Successful responses are wrapped as {"data": ...}. Errors use the
// {"error": {"code", "message", "details"}} envelope: validator.ValidationErrors
// become 422 with per-field details, HTTPError keeps its status, and any other
// error becomes a 500 with a generic message so internals never leak.
//
// # Errors
//
// NewErrorHandler builds an ErrorHandler that maps domain errors through a
// Classifier, logs server errors with the request id, and renders the
// envelope. A Response that returns an error from Render, a binder failure and
// a nil Response all go through the same handler.
package handler
