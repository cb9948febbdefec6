package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultDigits    = 6      // Standard 6-digit TOTP codes
	DefaultPeriod    = 30     // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm = "SHA1" // HMAC-SHA1 algorithm (RFC 6238 standard)
	DefaultSkew      = 1      // Adjacent steps accepted on each side for clock drift
)

var (
	// ValidateSecretKeyRegex ensures Base32 format: uppercase A-Z, digits 2-7, optional padding
	ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

	b32 = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// TOTPParams contains the parameters for TOTP URI generation
type TOTPParams struct {
	Secret      string // Base32-encoded TOTP secret key (required)
	AccountName string // User identifier like email (required)
	Issuer      string // Service name displayed in authenticator apps (required)
	Algorithm   string // HMAC algorithm (optional, defaults to SHA1)
	Digits      int    // Number of digits in generated codes (optional, defaults to 6)
	Period      int    // Code validity period in seconds (optional, defaults to 30)
}

// Validate ensures all required TOTP parameters are present and valid
func (p TOTPParams) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// GetDefaults returns a copy with RFC 6238 standard defaults applied to zero-valued fields
func (p TOTPParams) GetDefaults() TOTPParams {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// GenerateSecretKey generates a new Base32-encoded secret key for TOTP.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, 20) // 160-bit secret (RFC 4226 recommendation)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return b32.EncodeToString(secret), nil
}

// GetTOTPURI creates a properly encoded TOTP URI for use with authenticator apps.
// The URI format follows the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func GetTOTPURI(params TOTPParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	params = params.GetDefaults()

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", params.Secret)
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", params.Algorithm)
	query.Set("digits", fmt.Sprintf("%d", params.Digits))
	query.Set("period", fmt.Sprintf("%d", params.Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// Engine computes and verifies time-based codes for a fixed set of parameters.
// The zero value is not usable; construct with NewEngine.
type Engine struct {
	digits    int
	period    int64
	skew      int
	algorithm string
	hasher    func() hash.Hash
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithDigits sets the code length.
func WithDigits(digits int) Option {
	return func(e *Engine) {
		if digits > 0 {
			e.digits = digits
		}
	}
}

// WithPeriod sets the time step.
func WithPeriod(period time.Duration) Option {
	return func(e *Engine) {
		if s := int64(period / time.Second); s > 0 {
			e.period = s
		}
	}
}

// WithSkew sets how many adjacent steps on each side are accepted.
// Zero means only the current step.
func WithSkew(steps int) Option {
	return func(e *Engine) {
		if steps >= 0 {
			e.skew = steps
		}
	}
}

// WithAlgorithm selects the HMAC hash: SHA1, SHA256 or SHA512.
// Unknown names are reported by NewEngine.
func WithAlgorithm(name string) Option {
	return func(e *Engine) {
		e.algorithm = strings.ToUpper(name)
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine returns an Engine with RFC 6238 defaults: 6 digits, 30 s, SHA1, skew 1.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		digits:    DefaultDigits,
		period:    DefaultPeriod,
		skew:      DefaultSkew,
		algorithm: DefaultAlgorithm,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	switch e.algorithm {
	case "SHA1":
		e.hasher = sha1.New
	case "SHA256":
		e.hasher = sha256.New
	case "SHA512":
		e.hasher = sha512.New
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, e.algorithm)
	}

	return e, nil
}

// MustNewEngine is NewEngine that panics on misconfiguration.
func MustNewEngine(opts ...Option) *Engine {
	e, err := NewEngine(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time { return e.now() }

// URIParams fills the engine-specific fields of TOTPParams.
func (e *Engine) URIParams(secret, accountName, issuer string) TOTPParams {
	return TOTPParams{
		Secret:      secret,
		AccountName: accountName,
		Issuer:      issuer,
		Algorithm:   e.algorithm,
		Digits:      e.digits,
		Period:      int(e.period),
	}
}

// ProvisioningURI builds the otpauth:// URI for the given secret.
func (e *Engine) ProvisioningURI(secret, accountName, issuer string) (string, error) {
	return GetTOTPURI(e.URIParams(secret, accountName, issuer))
}

// Code returns the code for the time step containing t.
func (e *Engine) Code(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}
	return e.format(e.hotp(key, e.counter(t))), nil
}

// CurrentCode returns the code for the engine's current time.
func (e *Engine) CurrentCode(secret string) (string, error) {
	return e.Code(secret, e.now())
}

// Verify reports whether code matches the step containing t or one within the
// skew window. A malformed code returns ErrInvalidOTP; a wrong one returns false.
func (e *Engine) Verify(secret, code string, t time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if !e.wellFormed(code) {
		return false, ErrInvalidOTP
	}

	counter := e.counter(t)
	match := 0
	// Every candidate step is compared so timing does not reveal which one matched.
	for i := -e.skew; i <= e.skew; i++ {
		candidate := e.format(e.hotp(key, counter+int64(i)))
		match |= subtle.ConstantTimeCompare([]byte(candidate), []byte(code))
	}

	return match == 1, nil
}

// VerifyNow is Verify at the engine's current time.
func (e *Engine) VerifyNow(secret, code string) (bool, error) {
	return e.Verify(secret, code, e.now())
}

func (e *Engine) counter(t time.Time) int64 {
	return t.Unix() / e.period
}

func (e *Engine) format(code int) string {
	return fmt.Sprintf("%0*d", e.digits, code)
}

func (e *Engine) wellFormed(code string) bool {
	if len(code) != e.digits {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (e *Engine) hotp(key []byte, counter int64) int {
	return hotp(e.hasher, key, counter, e.digits)
}

// GenerateHOTP implements RFC 4226 HMAC-based One-Time Password algorithm with HMAC-SHA1.
func GenerateHOTP(key []byte, counter int64, digits int) int {
	return hotp(sha1.New, key, counter, digits)
}

func hotp(h func() hash.Hash, key []byte, counter int64, digits int) int {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(h, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation (RFC 4226): low nibble of the last byte selects the offset
	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]) << 16) |
		(int(sum[offset+2]) << 8) |
		int(sum[offset+3])

	return code % int(math.Pow10(digits))
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := b32.DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}
