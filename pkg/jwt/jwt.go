package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JWT header constants required by RFC 7519
const (
	HeaderType      = "JWT"
	HeaderAlgorithm = "HS256"
)

// MinSigningKeyLength is the shortest accepted HMAC key.
const MinSigningKeyLength = 32

// Header represents the JWT header as defined in RFC 7515
type Header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// StandardClaims represents the registered JWT claims defined in RFC 7519 Section 4.1.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// ValidAt checks temporal claims against now. Zero values are treated as unset.
func (c StandardClaims) ValidAt(now time.Time) error {
	ts := now.Unix()
	if c.ExpiresAt > 0 && ts >= c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.NotBefore > 0 && ts < c.NotBefore {
		return ErrInvalidToken
	}
	return nil
}

// Valid checks temporal claims against the wall clock.
func (c StandardClaims) Valid() error {
	return c.ValidAt(time.Now())
}

// Standard returns the registered claims so Parse can check them on embedding types.
func (c StandardClaims) Standard() StandardClaims { return c }

// Service signs and verifies HS256 tokens. It also stamps issuer, lifetime and
// a random jti through NewClaims.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIssuer sets the iss claim stamped by NewClaims and required by Parse.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// WithTTL sets the token lifetime used by NewClaims.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new JWT service with the provided signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(signingKey) < MinSigningKeyLength {
		return nil, ErrInvalidSigningKey
	}

	s := &Service{
		signingKey: append([]byte(nil), signingKey...),
		ttl:        15 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromConfig creates a service from Config.
func NewFromConfig(cfg Config) (*Service, error) {
	return New([]byte(cfg.SigningKey), WithIssuer(cfg.Issuer), WithTTL(cfg.TTL))
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// NewClaims returns registered claims for subject, valid from now for the configured TTL.
func (s *Service) NewClaims(subject string) StandardClaims {
	now := s.now()
	return StandardClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
}

// Generate creates a JWT token with the given claims.
// Accepts any JSON-serializable claims structure and returns a signed JWT string.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	headerJSON, err := json.Marshal(Header{Type: HeaderType, Algorithm: HeaderAlgorithm})
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

// Parse verifies the signature and unmarshals claims. When claims carry
// StandardClaims, expiry, not-before and (if configured) issuer are checked
// against the service clock.
func (s *Service) Parse(tokenString string, claims any) error {
	if claims == nil {
		return ErrMissingClaims
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	payload := parts[0] + "." + parts[1]
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(s.sign(payload))) != 1 {
		return ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return fmt.Errorf("%w: failed to decode header: %v", ErrInvalidToken, err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return fmt.Errorf("%w: failed to unmarshal header: %v", ErrInvalidToken, err)
	}

	// Reject tokens using unexpected algorithms to prevent algorithm confusion attacks
	if header.Algorithm != HeaderAlgorithm {
		return ErrUnexpectedSigningMethod
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return fmt.Errorf("%w: failed to decode claims: %v", ErrInvalidClaims, err)
	}
	if err := json.Unmarshal(claimsJSON, claims); err != nil {
		return fmt.Errorf("%w: failed to unmarshal claims: %v", ErrInvalidClaims, err)
	}

	if sc, ok := claims.(interface{ Standard() StandardClaims }); ok {
		std := sc.Standard()
		if err := std.ValidAt(s.now()); err != nil {
			return err
		}
		if s.issuer != "" && std.Issuer != s.issuer {
			return ErrInvalidClaims
		}
	}

	return nil
}

// sign creates a base64url HMAC-SHA256 signature for the given payload.
func (s *Service) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
