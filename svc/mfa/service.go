package mfa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/qrcode"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/totp"
	"github.com/dmitrymomot/authkit/pkg/validator"
	"github.com/dmitrymomot/authkit/svc/account"
	"github.com/dmitrymomot/authkit/svc/notify"
)

var recoveryCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)

// Reauthenticator confirms the password of the live account. auth.Service
// satisfies it; inactive accounts must report false.
type Reauthenticator interface {
	Reauthenticate(ctx context.Context, identity, password string) (bool, error)
}

// EventDispatcher queues a notification without blocking.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event *notify.Event)
}

// SetupResult carries what an authenticator app needs to enroll.
type SetupResult struct {
	ProvisioningURI string
	QRCode          string // PNG data URI of ProvisioningURI
}

// ValidateResult holds recovery codes generated by the first successful
// validation. RecoveryCodes is empty when the account already had codes.
type ValidateResult struct {
	RecoveryCodes []string
}

// Status is a read-only view of the account's MFA state.
type Status struct {
	State                  string
	Activated              bool
	Verified               bool
	RecoveryCodesRemaining int
}

// Service drives the MFA lifecycle. Every mutating operation is a single
// account.Repository.Update, so state checks and writes are atomic per account.
type Service struct {
	repo       account.Repository
	secretBox  *secrets.Box
	codes      *RecoveryCodes
	reauth     Reauthenticator
	engine     *totp.Engine
	dispatcher EventDispatcher
	cfg        Config
	logger     *slog.Logger
}

type Option func(*Service)

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithEngine overrides the TOTP engine built from Config.Skew.
func WithEngine(engine *totp.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithDispatcher publishes verify, disable, activate and regenerate events.
func WithDispatcher(d EventDispatcher) Option {
	return func(s *Service) {
		s.dispatcher = d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService wires the MFA service. secretBox seals OTP secrets and must be
// built for secrets.PurposeOTPSecret.
func NewService(repo account.Repository, secretBox *secrets.Box, codes *RecoveryCodes, reauth Reauthenticator, opts ...Option) (*Service, error) {
	s := &Service{
		repo:      repo,
		secretBox: secretBox,
		codes:     codes,
		reauth:    reauth,
		cfg:       DefaultConfig(),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.RecoveryCodeCount < 1 {
		return nil, totp.ErrInvalidRecoveryCodeCount
	}
	if s.cfg.QRCodeSize <= 0 {
		s.cfg.QRCodeSize = qrcode.DefaultSize
	}
	if s.engine == nil {
		engine, err := totp.NewEngine(totp.WithSkew(s.cfg.Skew))
		if err != nil {
			return nil, err
		}
		s.engine = engine
	}
	s.logger = s.logger.With(logger.Component("mfa"))

	return s, nil
}

// PrepareAccount seeds MFA fields on a new account before it is stored: a
// sealed secret is always generated and activation follows the configured default.
func (s *Service) PrepareAccount(_ context.Context, a *account.Account) error {
	if err := s.rotateSecret(a); err != nil {
		return err
	}
	a.OTPActivated = s.cfg.ActivatedByDefault
	a.OTPVerified = false
	a.RecoveryCodes = nil
	return nil
}

// Setup returns the provisioning URI for any unverified account, generating
// the secret if the account has none. It does not change the MFA flags.
func (s *Service) Setup(ctx context.Context, identity string) (*SetupResult, error) {
	var uri string

	_, err := s.repo.Update(ctx, identity, func(a *account.Account) error {
		if _, err := advance(ctx, a, EventSetup); err != nil {
			return err
		}

		secret, err := s.ensureSecret(a)
		if err != nil {
			return err
		}

		uri, err = s.engine.ProvisioningURI(secret, a.Identity, s.cfg.Issuer)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "setup", identity, err)
	}

	qr, err := qrcode.DataURI(uri, s.cfg.QRCodeSize)
	if err != nil {
		return nil, s.fail(ctx, "setup", identity, err)
	}

	return &SetupResult{ProvisioningURI: uri, QRCode: qr}, nil
}

// Validate checks a TOTP code and marks the account verified. Recovery codes
// are generated and returned only if the account has none yet.
func (s *Service) Validate(ctx context.Context, identity, code string) (*ValidateResult, error) {
	code = sanitizer.Apply(code, sanitizer.Trim)
	if err := validator.Apply(validator.ValidOTP("code", code, totp.DefaultDigits)); err != nil {
		return nil, err
	}

	result := &ValidateResult{}
	var firstVerification bool
	acc, err := s.repo.Update(ctx, identity, func(a *account.Account) error {
		result.RecoveryCodes = nil
		firstVerification = !a.OTPVerified

		// The code is checked against the pre-transition state.
		if StateOf(a) == StateDisabled {
			return ErrNotActivated
		}
		if err := s.checkCode(a, code); err != nil {
			return err
		}
		if _, err := advance(ctx, a, EventValidate); err != nil {
			return err
		}

		if len(a.RecoveryCodes) > 0 {
			return nil
		}
		codes, blob, err := s.codes.Generate(s.cfg.RecoveryCodeCount)
		if err != nil {
			return err
		}
		a.RecoveryCodes = blob
		result.RecoveryCodes = codes
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "validate", identity, err)
	}

	s.logger.InfoContext(ctx, "mfa code validated",
		logger.Identity(identity),
		logger.MFAState(StateVerified.Name()),
		slog.Bool("recovery_codes_issued", len(result.RecoveryCodes) > 0),
	)
	if firstVerification {
		s.publish(ctx, notify.EventMFAVerified, acc)
	}
	return result, nil
}

// Disable consumes one recovery code and turns MFA off, clearing the secret,
// flags and remaining codes in one write.
func (s *Service) Disable(ctx context.Context, identity, recoveryCode string) error {
	recoveryCode = sanitizer.Apply(recoveryCode, sanitizer.Trim)
	if err := validator.Apply(
		validator.Matches("recovery_code", recoveryCode, recoveryCodeRegex, "a 10-character recovery code"),
	); err != nil {
		return err
	}

	acc, err := s.repo.Update(ctx, identity, func(a *account.Account) error {
		if StateOf(a) == StateDisabled {
			return ErrNotActivated
		}

		consumed, _, err := s.codes.Consume(a.RecoveryCodes, recoveryCode)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrInvalidRecoveryCode
		}

		if _, err := advance(ctx, a, EventDisable); err != nil {
			return err
		}
		a.OTPSecret = ""
		a.RecoveryCodes = nil
		return nil
	})
	if err != nil {
		return s.fail(ctx, "disable", identity, err)
	}

	s.logger.InfoContext(ctx, "mfa disabled", logger.Identity(identity), logger.MFAState(StateDisabled.Name()))
	s.publish(ctx, notify.EventMFADisabled, acc)
	return nil
}

// Activate re-enables MFA after the password is confirmed. A fresh secret is
// always generated; the account must complete Setup and Validate again.
func (s *Service) Activate(ctx context.Context, identity, password string) error {
	if err := validator.Apply(validator.Required("password", password)); err != nil {
		return err
	}

	// State first: an activated account gets ErrAlreadyActivated whatever the password.
	current, err := s.repo.GetByIdentity(ctx, identity)
	if err != nil {
		return s.fail(ctx, "activate", identity, err)
	}
	if StateOf(current) != StateDisabled {
		return ErrAlreadyActivated
	}
	if err := s.confirmPassword(ctx, identity, password); err != nil {
		return s.fail(ctx, "activate", identity, err)
	}

	acc, err := s.repo.Update(ctx, identity, func(a *account.Account) error {
		if _, err := advance(ctx, a, EventActivate); err != nil {
			return err
		}
		a.RecoveryCodes = nil
		return s.rotateSecret(a)
	})
	if err != nil {
		return s.fail(ctx, "activate", identity, err)
	}

	s.logger.InfoContext(ctx, "mfa activated", logger.Identity(identity), logger.MFAState(StateUnverified.Name()))
	s.publish(ctx, notify.EventMFAActivated, acc)
	return nil
}

// Status reports the MFA flags and how many recovery codes are left.
func (s *Service) Status(ctx context.Context, identity string) (*Status, error) {
	a, err := s.repo.GetByIdentity(ctx, identity)
	if err != nil {
		return nil, s.fail(ctx, "status", identity, err)
	}

	remaining, err := s.codes.Remaining(a.RecoveryCodes)
	if err != nil {
		return nil, s.fail(ctx, "status", identity, err)
	}

	return &Status{
		State:                  StateOf(a).Name(),
		Activated:              a.OTPActivated,
		Verified:               a.OTPVerified,
		RecoveryCodesRemaining: remaining,
	}, nil
}

// RegenerateRecoveryCodes replaces the whole recovery code set of a verified
// account after a valid TOTP code. The new codes are returned once.
func (s *Service) RegenerateRecoveryCodes(ctx context.Context, identity, code string) ([]string, error) {
	code = sanitizer.Apply(code, sanitizer.Trim)
	if err := validator.Apply(validator.ValidOTP("code", code, totp.DefaultDigits)); err != nil {
		return nil, err
	}

	var codes []string
	acc, err := s.repo.Update(ctx, identity, func(a *account.Account) error {
		codes = nil
		if _, err := advance(ctx, a, EventRegenerate); err != nil {
			return err
		}
		if err := s.checkCode(a, code); err != nil {
			return err
		}

		fresh, blob, err := s.codes.Generate(s.cfg.RecoveryCodeCount)
		if err != nil {
			return err
		}
		a.RecoveryCodes = blob
		codes = fresh
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "regenerate_recovery_codes", identity, err)
	}

	s.logger.InfoContext(ctx, "recovery codes regenerated", logger.Identity(identity))
	s.publish(ctx, notify.EventRecoveryCodesRegenerated, acc)
	return codes, nil
}

func (s *Service) checkCode(a *account.Account, code string) error {
	if a.OTPSecret == "" {
		return ErrInvalidCode
	}

	secret, err := s.secretBox.DecryptString(a.OTPSecret)
	if err != nil {
		return err
	}

	ok, err := s.engine.Verify(secret, code, s.engine.Now())
	if err != nil {
		if errors.Is(err, totp.ErrInvalidOTP) {
			return ErrInvalidCode
		}
		return err
	}
	if !ok {
		return ErrInvalidCode
	}
	return nil
}

func (s *Service) confirmPassword(ctx context.Context, identity, password string) error {
	if s.reauth == nil {
		return ErrInvalidPassword
	}
	ok, err := s.reauth.Reauthenticate(ctx, identity, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidPassword
	}
	return nil
}

func (s *Service) ensureSecret(a *account.Account) (string, error) {
	if a.OTPSecret != "" {
		return s.secretBox.DecryptString(a.OTPSecret)
	}
	if err := s.rotateSecret(a); err != nil {
		return "", err
	}
	return s.secretBox.DecryptString(a.OTPSecret)
}

func (s *Service) rotateSecret(a *account.Account) error {
	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return err
	}
	sealed, err := s.secretBox.EncryptString(secret)
	if err != nil {
		return err
	}
	a.OTPSecret = sealed
	return nil
}

func (s *Service) publish(ctx context.Context, t notify.EventType, a *account.Account) {
	if s.dispatcher == nil || a == nil {
		return
	}
	s.dispatcher.Dispatch(ctx, notify.NewEvent(t, a.Identity, a.ID.String()))
}

// fail logs faults and passes every error through unchanged.
func (s *Service) fail(ctx context.Context, op, identity string, err error) error {
	if IsFault(err) {
		s.logger.ErrorContext(ctx, "mfa operation failed",
			logger.Operation(op),
			logger.Identity(identity),
			logger.Error(err),
		)
		return fmt.Errorf("mfa %s: %w", op, err)
	}
	return err
}
