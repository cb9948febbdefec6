package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
	"github.com/dmitrymomot/authkit/pkg/validator"
	"github.com/dmitrymomot/authkit/svc/account"
	"github.com/dmitrymomot/authkit/svc/notify"
)

// Claims are the bearer token claims. Subject is the account identity.
type Claims struct {
	jwt.StandardClaims
}

// Session is the result of a successful login.
// MFA flags are informational; login does not require a TOTP code.
type Session struct {
	Token        string
	ExpiresAt    time.Time
	Identity     string
	OTPActivated bool
	OTPVerified  bool
}

// AccountInitializer runs on a new account before it is stored.
type AccountInitializer func(ctx context.Context, a *account.Account) error

// EventDispatcher queues a notification without blocking.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event *notify.Event)
}

// Service registers accounts and issues session tokens.
type Service struct {
	repo             account.Repository
	tokens           *jwt.Service
	hasher           PasswordHasher
	initializer      AccountInitializer
	dispatcher       EventDispatcher
	passwordStrength validator.PasswordStrengthConfig
	logger           *slog.Logger
}

type Option func(*Service)

func WithHasher(h PasswordHasher) Option {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

// WithAccountInitializer sets the hook that seeds new accounts (MFA state).
func WithAccountInitializer(fn AccountInitializer) Option {
	return func(s *Service) {
		s.initializer = fn
	}
}

func WithDispatcher(d EventDispatcher) Option {
	return func(s *Service) {
		s.dispatcher = d
	}
}

func WithPasswordStrength(cfg validator.PasswordStrengthConfig) Option {
	return func(s *Service) {
		s.passwordStrength = cfg
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(repo account.Repository, tokens *jwt.Service, opts ...Option) *Service {
	s := &Service{
		repo:             repo,
		tokens:           tokens,
		hasher:           NewBcryptHasher(0),
		passwordStrength: validator.DefaultPasswordStrength(),
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("auth"))
	return s
}

// Register creates an account for a new e-mail address and announces it.
func (s *Service) Register(ctx context.Context, identity, password string) (*account.Account, error) {
	identity = sanitizer.NormalizeEmail(identity)

	if err := validator.Apply(
		validator.ValidEmail("email", identity),
		validator.StrongPassword("password", password, s.passwordStrength),
		validator.NotCommonPassword("password", password),
	); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByIdentity(ctx, identity)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	acc := account.New(identity, hash)
	if s.initializer != nil {
		if err := s.initializer(ctx, acc); err != nil {
			return nil, fmt.Errorf("failed to initialize account: %w", err)
		}
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, account.ErrAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered", logger.AccountID(acc.ID.String()))

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, notify.NewEvent(notify.EventSignup, acc.Identity, acc.ID.String()))
	}

	return acc, nil
}

// Login checks the password and issues a bearer token. Every rejection,
// including unknown or inactive accounts, is ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, identity, password string) (*Session, error) {
	acc, err := s.authenticate(ctx, identity, password)
	if err != nil {
		return nil, err
	}

	claims := Claims{StandardClaims: s.tokens.NewClaims(acc.Identity)}
	token, err := s.tokens.Generate(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &Session{
		Token:        token,
		ExpiresAt:    time.Unix(claims.ExpiresAt, 0).UTC(),
		Identity:     acc.Identity,
		OTPActivated: acc.OTPActivated,
		OTPVerified:  acc.OTPVerified,
	}, nil
}

// Reauthenticate confirms the password of an already authenticated account.
func (s *Service) Reauthenticate(ctx context.Context, identity, password string) (bool, error) {
	if _, err := s.authenticate(ctx, identity, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ParseToken verifies a bearer token and returns its claims.
func (s *Service) ParseToken(token string) (*Claims, error) {
	var claims Claims
	if err := s.tokens.Parse(token, &claims); err != nil {
		return nil, errors.Join(ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return nil, ErrUnauthorized
	}
	return &claims, nil
}

func (s *Service) authenticate(ctx context.Context, identity, password string) (*account.Account, error) {
	identity = sanitizer.NormalizeEmail(identity)
	if identity == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	acc, err := s.repo.GetByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(acc.CredentialHash, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !acc.IsActive {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}
