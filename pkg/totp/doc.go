// Package totp implements time-based one-time passwords (RFC 6238) on top of
// HOTP (RFC 4226), plus generation of human-typeable recovery codes.
//
// An Engine fixes the code parameters (digits, period, hash, accepted clock
// skew) and exposes Code and Verify. Verification compares every candidate in
// the skew window in constant time. Secrets are Base32 without padding, as
// produced by GenerateSecretKey and expected by authenticator apps.
//
// Storage of secrets is out of scope here; see package secrets for sealing
// them at rest.
//
// # Usage
//
//	engine := totp.MustNewEngine()
//
//	secret, _ := totp.GenerateSecretKey()
//	uri, _ := engine.ProvisioningURI(secret, "alice@example.com", "Acme")
//	fmt.Println(uri)
//
//	ok, err := engine.VerifyNow(secret, "123456")
//	if errors.Is(err, totp.ErrInvalidOTP) {
//	    // not six digits
//	}
//
//	codes, _ := totp.GenerateRecoveryCodes(10, totp.DefaultRecoveryCodeLength)
//
// # Errors
//
// Input problems are reported with sentinel errors such as ErrInvalidSecret and
// ErrInvalidOTP, so callers can use errors.Is. A well-formed but wrong code is
// not an error: Verify returns false.
package totp
