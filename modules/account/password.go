package account

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/binder"
	accounts "github.com/dmitrymomot/authkit/svc/account"
	"github.com/dmitrymomot/authkit/svc/auth"
)

// Authenticator is the part of auth.Service used by the password routes.
type Authenticator interface {
	Register(ctx context.Context, identity, password string) (*accounts.Account, error)
	Login(ctx context.Context, identity, password string) (*auth.Session, error)
}

// PasswordService serves POST /signup and POST /login.
type PasswordService struct {
	auth         Authenticator
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewPasswordService(authenticator Authenticator, errorHandler handler.ErrorHandler[handler.Context]) *PasswordService {
	return &PasswordService{auth: authenticator, errorHandler: errorHandler}
}

func (s *PasswordService) Routes(r chi.Router) {
	r.Post("/signup", handler.Wrap(s.signup,
		handler.WithBinders[handler.Context, credentialsRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, credentialsRequest](s.errorHandler),
	))
	r.Post("/login", handler.Wrap(s.login,
		handler.WithBinders[handler.Context, credentialsRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, credentialsRequest](s.errorHandler),
	))
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is the public view of a newly registered account.
type AccountResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	OTPActivated bool   `json:"otp_activated"`
	OTPVerified  bool   `json:"otp_verified"`
}

// SessionResponse is returned by a successful login. The MFA flags are
// informational: the token is usable before the second factor is verified.
type SessionResponse struct {
	Token        string    `json:"token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	Email        string    `json:"email"`
	OTPActivated bool      `json:"otp_activated"`
	OTPVerified  bool      `json:"otp_verified"`
}

func (s *PasswordService) signup(ctx handler.Context, req credentialsRequest) handler.Response {
	acc, err := s.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Fail(err)
	}

	return handler.JSON(AccountResponse{
		ID:           acc.ID.String(),
		Email:        acc.Identity,
		OTPActivated: acc.OTPActivated,
		OTPVerified:  acc.OTPVerified,
	}, handler.WithJSONStatus(http.StatusCreated))
}

func (s *PasswordService) login(ctx handler.Context, req credentialsRequest) handler.Response {
	session, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Fail(err)
	}

	return handler.JSON(SessionResponse{
		Token:        session.Token,
		TokenType:    "Bearer",
		ExpiresAt:    session.ExpiresAt,
		Email:        session.Identity,
		OTPActivated: session.OTPActivated,
		OTPVerified:  session.OTPVerified,
	})
}
