package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/binder"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

// MFAManager is the part of mfa.Service used by the MFA routes.
type MFAManager interface {
	Setup(ctx context.Context, identity string) (*mfa.SetupResult, error)
	Validate(ctx context.Context, identity, code string) (*mfa.ValidateResult, error)
	Disable(ctx context.Context, identity, recoveryCode string) error
	Activate(ctx context.Context, identity, password string) error
	Status(ctx context.Context, identity string) (*mfa.Status, error)
	RegenerateRecoveryCodes(ctx context.Context, identity, code string) ([]string, error)
}

// MFAService serves the bearer-authenticated /mfa-* routes. The token subject
// is the account identity every operation acts on.
type MFAService struct {
	mfa          MFAManager
	tokens       *jwt.Service
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewMFAService(manager MFAManager, tokens *jwt.Service, errorHandler handler.ErrorHandler[handler.Context]) *MFAService {
	return &MFAService{mfa: manager, tokens: tokens, errorHandler: errorHandler}
}

func (s *MFAService) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware[auth.Claims](s.tokens, jwt.MiddlewareConfig{
			ErrorHandler: func(w http.ResponseWriter, req *http.Request, _ error) {
				s.errorHandler(handler.NewContext(w, req), auth.ErrUnauthorized)
			},
		}))

		r.Get("/mfa-setup", handler.Wrap(s.setup,
			handler.WithDecorators(requireIdentity[emptyRequest]()),
			handler.WithErrorHandler[handler.Context, emptyRequest](s.errorHandler),
		))
		r.Get("/mfa-status", handler.Wrap(s.status,
			handler.WithDecorators(requireIdentity[emptyRequest]()),
			handler.WithErrorHandler[handler.Context, emptyRequest](s.errorHandler),
		))
		r.Post("/mfa-validate", handler.Wrap(s.validate,
			handler.WithBinders[handler.Context, codeRequest](binder.JSON()),
			handler.WithDecorators(requireIdentity[codeRequest]()),
			handler.WithErrorHandler[handler.Context, codeRequest](s.errorHandler),
		))
		r.Post("/mfa-recovery-codes", handler.Wrap(s.regenerate,
			handler.WithBinders[handler.Context, codeRequest](binder.JSON()),
			handler.WithDecorators(requireIdentity[codeRequest]()),
			handler.WithErrorHandler[handler.Context, codeRequest](s.errorHandler),
		))
		r.Post("/mfa-disable", handler.Wrap(s.disable,
			handler.WithBinders[handler.Context, disableRequest](binder.JSON()),
			handler.WithDecorators(requireIdentity[disableRequest]()),
			handler.WithErrorHandler[handler.Context, disableRequest](s.errorHandler),
		))
		r.Post("/mfa-activate", handler.Wrap(s.activate,
			handler.WithBinders[handler.Context, activateRequest](binder.JSON()),
			handler.WithDecorators(requireIdentity[activateRequest]()),
			handler.WithErrorHandler[handler.Context, activateRequest](s.errorHandler),
		))
	})
}

type (
	emptyRequest struct{}

	codeRequest struct {
		Code string `json:"code"`
	}

	disableRequest struct {
		RecoveryCode string `json:"recovery_code"`
	}

	activateRequest struct {
		Password string `json:"password"`
	}
)

// SetupResponse carries the enrollment data for an authenticator app.
type SetupResponse struct {
	ProvisioningURI string `json:"provisioning_uri"`
	QRCode          string `json:"qr_code"`
}

// RecoveryCodesResponse is returned by validate and regenerate. Codes are
// omitted when validate did not issue a new set.
type RecoveryCodesResponse struct {
	RecoveryCodes []string `json:"recovery_codes,omitempty"`
}

type StatusResponse struct {
	State                  string `json:"state"`
	OTPActivated           bool   `json:"otp_activated"`
	OTPVerified            bool   `json:"otp_verified"`
	RecoveryCodesRemaining int    `json:"recovery_codes_remaining"`
}

func (s *MFAService) setup(ctx handler.Context, _ emptyRequest) handler.Response {
	res, err := s.mfa.Setup(ctx, identityFrom(ctx))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(SetupResponse{ProvisioningURI: res.ProvisioningURI, QRCode: res.QRCode})
}

func (s *MFAService) validate(ctx handler.Context, req codeRequest) handler.Response {
	res, err := s.mfa.Validate(ctx, identityFrom(ctx), req.Code)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(RecoveryCodesResponse{RecoveryCodes: res.RecoveryCodes})
}

func (s *MFAService) disable(ctx handler.Context, req disableRequest) handler.Response {
	if err := s.mfa.Disable(ctx, identityFrom(ctx), req.RecoveryCode); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}

func (s *MFAService) activate(ctx handler.Context, req activateRequest) handler.Response {
	if err := s.mfa.Activate(ctx, identityFrom(ctx), req.Password); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}

func (s *MFAService) status(ctx handler.Context, _ emptyRequest) handler.Response {
	st, err := s.mfa.Status(ctx, identityFrom(ctx))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(StatusResponse{
		State:                  st.State,
		OTPActivated:           st.Activated,
		OTPVerified:            st.Verified,
		RecoveryCodesRemaining: st.RecoveryCodesRemaining,
	})
}

func (s *MFAService) regenerate(ctx handler.Context, req codeRequest) handler.Response {
	codes, err := s.mfa.RegenerateRecoveryCodes(ctx, identityFrom(ctx), req.Code)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(RecoveryCodesResponse{RecoveryCodes: codes})
}

// identityFrom returns the token subject, or "" outside an authenticated route.
func identityFrom(ctx context.Context) string {
	claims, ok := jwt.GetClaims[*auth.Claims](ctx)
	if !ok || claims == nil {
		return ""
	}
	return claims.Subject
}

// requireIdentity rejects tokens that verified but carry no subject.
func requireIdentity[R any]() handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			if identityFrom(ctx) == "" {
				return handler.Fail(auth.ErrUnauthorized)
			}
			return next(ctx, req)
		}
	}
}
